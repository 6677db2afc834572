// Package files selects the input files of a run and names their outputs.
//
// Discovery expands either a single --file or a --glob pattern into an
// ordered list of inputs, skipping directories and Office lock files
// (~$name.xlsx). OutputPath derives "<dir>/<stem><suffix>.<ext>" next to
// each input.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.Expand("", "exports/*.xlsx")
//	out, err := files.OutputPath(inputs[0].Path, "_limpio", "csv")
package files
