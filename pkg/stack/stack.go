package stack

// RecognizedRepositories lists the n8n image repositories this tool knows
// how to upgrade, most specific first. Matching iterates in order, so the
// registry-qualified form must stay ahead of the short form it contains.
var RecognizedRepositories = []string{
	"docker.n8n.io/n8nio/n8n",
	"n8nio/n8n",
}

const (
	// DefaultService is the conventional service name used as a fallback
	// when no declared image matches a recognized repository.
	DefaultService = "n8n"

	// DefaultRepository is pulled when the located service's repository
	// could not be determined from its image line.
	DefaultRepository = "n8nio/n8n"

	// DefaultTag is the tag upgraded to when the invocation names none.
	DefaultTag = "latest"
)
