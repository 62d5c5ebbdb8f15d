package repository

// Option applies a configuration option to a dataset loader.
type Option func(*loadOptions)

type loadOptions struct {
	delimiter rune
}

func defaultLoadOptions(delim rune, opts []Option) loadOptions {
	o := loadOptions{delimiter: delim}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDelimiter overrides the field delimiter of the file.
func WithDelimiter(d rune) Option {
	return func(o *loadOptions) {
		if d != 0 {
			o.delimiter = d
		}
	}
}
