package ports

// Converter transliterates a legacy-encoded (Bijoy) string into Unicode
// Bengali. Implementations convert blindly: feeding them ordinary English
// text still yields Bengali code points, so callers must validate the
// output before trusting it. A failed call leaves the input unusable and
// the caller is expected to keep the original string.
type Converter interface {
	Convert(text string) (string, error)
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(text string) (string, error)

func (f ConverterFunc) Convert(text string) (string, error) {
	return f(text)
}
