// Package errors provides structured, coded errors for signalgraph.
//
// Every error raised by the graph, its configuration or its host surfaces
// carries a stable code (e.g. "G001") that maps to:
//   - A category (relation, graph, config, request)
//   - A short message and a longer explanation
//   - A documentation URL
//
// Codes make errors comparable across wrapping: two *GraphError values
// match under errors.Is when their codes are equal, so a sentinel built
// with New can be tested against any error carrying the same code.
//
// # Usage
//
//	err := errors.New("G001").
//	    WithDetail("room 7 references house 3").
//	    WithSuggestion("Create the house before its rooms")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR G001: Missing relation
//	//
//	//   room 7 references house 3
//	//
//	//   Hint: Create the house before its rooms
//	//
//	//   Learn more: https://vango.dev/signalgraph/errors/G001
package errors
