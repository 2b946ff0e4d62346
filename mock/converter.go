package mock

import "github.com/fwojciec/schemascan"

var _ schemascan.Converter = (*Converter)(nil)

// Converter is a mock implementation of schemascan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
