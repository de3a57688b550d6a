package token

type tokenOpts struct {
	unquotedKeys bool
	controlChars bool
	recover      func(*TokenizeErr) bool
}

type TokenOpt func(*tokenOpts)

// TokenUnquotedKeys makes bare identifiers tokenize as TLiteral instead of
// failing.
func TokenUnquotedKeys() TokenOpt {
	return func(o *tokenOpts) { o.unquotedKeys = true }
}

// TokenControlChars accepts raw control characters inside strings.
func TokenControlChars() TokenOpt {
	return func(o *tokenOpts) { o.controlChars = true }
}

// TokenRecover registers f to be consulted on each error. If f returns
// true the offending input is skipped and tokenizing continues.
func TokenRecover(f func(*TokenizeErr) bool) TokenOpt {
	return func(o *tokenOpts) { o.recover = f }
}
