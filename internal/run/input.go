package run

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Normalize trims surrounding whitespace so a blank field fails presence
// validation.
func (in Input) Normalize() Input {
	return Input{
		RepoURL:    strings.TrimSpace(in.RepoURL),
		TeamName:   strings.TrimSpace(in.TeamName),
		LeaderName: strings.TrimSpace(in.LeaderName),
	}
}

// Validate checks presence of all three fields and that RepoURL is a URL.
func (in Input) Validate() error {
	n := in.Normalize()
	return validate.Struct(&n)
}

// Metadata converts operator input into the metadata recorded at run start.
func (in Input) Metadata() Metadata {
	n := in.Normalize()
	return Metadata{
		RepoURL:    n.RepoURL,
		TeamName:   n.TeamName,
		LeaderName: n.LeaderName,
	}
}
