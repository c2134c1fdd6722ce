package environment

// Environment is the deployment mode the process was started in.
type Environment int

const (
	Other Environment = iota
	Development
	Production
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Resolve maps a build-mode string to an Environment. The match is exact;
// every unrecognised value, including the empty string, resolves to Other.
func Resolve(mode string) Environment {
	switch mode {
	case ModeDevelopment:
		return Development
	case ModeProduction:
		return Production
	default:
		return Other
	}
}

func (e Environment) String() string {
	switch e {
	case Development:
		return ModeDevelopment
	case Production:
		return ModeProduction
	default:
		return "other"
	}
}

// IsDevelopment reports whether e talks to a locally running backend.
func (e Environment) IsDevelopment() bool {
	return e == Development
}

// IsProductionLike reports whether e must use proxied, same-origin URLs.
// Other falls on this side so an unknown mode never points a deployed
// dashboard at a developer's localhost.
func (e Environment) IsProductionLike() bool {
	return e != Development
}
