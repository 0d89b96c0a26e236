package twlint

// DefaultKeyframes are the keyframes the framework ships in its default
// theme. theme.extend merges on top of them; theme.keyframes replaces them.
var DefaultKeyframes = []string{"spin", "ping", "pulse", "bounce"}

// DefaultAnimations maps the default animation utilities to the keyframes
// they run. Their keyframes count as used while theme.animation is not
// overridden.
var DefaultAnimations = map[string]string{
	"spin":   "spin",
	"ping":   "ping",
	"pulse":  "pulse",
	"bounce": "bounce",
}
