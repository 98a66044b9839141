package constants

const (
	ExternalName = "FX Mate"
	Version      = "1.0.0"
)
