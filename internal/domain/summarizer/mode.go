package summarizer

import "fmt"

// Mode selects the system instruction that shapes the summary.
type Mode int

const (
	ModeSimple Mode = iota + 1
	ModeExpert
	ModeBulletPoints
)

// DefaultModeName is used when a request omits mode.
const DefaultModeName = "default"

const (
	simpleInstruction  = "Explain simply like I'm 5. Use short sentences."
	expertInstruction  = "Summarize for an expert reader. Keep precise terminology, key figures and caveats."
	bulletInstruction  = "Summarize the following content as concise bullet points, one idea per bullet."
	genericInstruction = "Summarize the following content."
)

var modesByName = map[string]Mode{
	DefaultModeName: ModeSimple,
	"simple":        ModeSimple,
	"like_i_am_5":   ModeSimple,
	"expert":        ModeExpert,
	"bullet-points": ModeBulletPoints,
	"bullet_points": ModeBulletPoints,
}

// ParseMode resolves a wire value. Unknown values are rejected.
func ParseMode(name string) (Mode, bool) {
	mode, ok := modesByName[name]
	return mode, ok
}

func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return DefaultModeName
	case ModeExpert:
		return "expert"
	case ModeBulletPoints:
		return "bullet-points"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// SystemInstruction returns the fixed instruction for m. The generic
// instruction is only reachable for a Mode that bypassed ParseMode.
func SystemInstruction(m Mode) string {
	switch m {
	case ModeSimple:
		return simpleInstruction
	case ModeExpert:
		return expertInstruction
	case ModeBulletPoints:
		return bulletInstruction
	default:
		return genericInstruction
	}
}
