/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically
constructing causal graphs.

It allows developers to define weighted, time-lagged causal chains using a
type-safe, fluent builder pattern instead of relying on external YAML or JSON
files. This is particularly useful for dynamic graph generation, unit testing,
and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/aeon/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Environmental("PM2.5").Label("Fine particulate matter").
			Activates("NFKB1", 0.65).LagHours(6)

		b.Molecular("NFKB1").
			Increases("IL-6", 0.78).LagHours(12)

		b.Biomarker("IL-6").
			Increases("CRP", 0.90).LagHours(24)

		b.Biomarker("CRP")

		b.Genetic("GSTM1-null").Amplifies(1.3, "NFKB1")

		spec, err := b.Build()
		// ... pass spec to aeon.Engine.Predict(...)
		_ = spec
		_ = err
	}
*/
package dsl
