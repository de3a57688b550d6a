// Package convert maps Go values to document nodes and back.
//
// A Registry holds converters for specific Go types. It is built once
// from providers and handed to the code that needs it:
//
//	reg, err := convert.New(convert.ProviderFunc(func() []convert.Converter {
//		return []convert.Converter{{
//			Type:     reflect.TypeFor[time.Duration](),
//			ToNode:   durationToNode,
//			FromNode: durationFromNode,
//		}}
//	}))
//	node, err := reg.ToNode(cfg)
//	err = reg.FromNode(node, &cfg)
//
// Serializing uses only a converter registered for the exact type of a
// value. Deserializing also accepts converters for nearby types, found
// breadth first through pointers, embedded fields and registered
// interfaces. Values without a converter follow built-in rules close to
// those of encoding/json, except that numbers keep their exact value.
//
// A nil *Registry is valid and has no converters.
package convert
