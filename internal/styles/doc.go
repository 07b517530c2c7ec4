// Package styles loads a Word template and catalogs its paragraph, list,
// and table styles for the renderers. The catalog is built once per
// conversion and is read-only afterward; every lookup degrades to a
// Normal-equivalent fallback so a template missing a style never aborts a
// conversion.
package styles
