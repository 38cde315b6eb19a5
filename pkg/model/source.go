package model

//go:generate go run github.com/dmarkham/enumer -type Source -trimprefix Source -transform snake-upper -json -text -yaml -output source.gen.go

// Source records where a secret originated.
type Source int

const (
	SourceAwsSam Source = iota
	SourceOther
)
