// Package extract reads embedded structured data out of parsed HTML
// documents.
//
// Each supported format has its own schemascan.FormatExtractor. The
// Aggregator runs all of them over one document snapshot in a fixed order
// and reports what was found.
package extract
