package chart

import (
	"fmt"

	"github.com/google/uuid"
)

// identityNamespace scopes derived identities to this engine.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/mekko"))

// CategoryIdentity returns c.Identity, or a deterministic token derived from
// the category's index and value.
func CategoryIdentity(index int, c Category) string {
	if c.Identity != "" {
		return c.Identity
	}
	return uuid.NewSHA1(identityNamespace, []byte(fmt.Sprintf("category:%d:%v", index, c.Value))).String()
}

// SeriesIdentity returns col.Identity, or a deterministic token derived from
// the series' index and name.
func SeriesIdentity(index int, col Column) string {
	if col.Identity != "" {
		return col.Identity
	}
	return uuid.NewSHA1(identityNamespace, []byte(fmt.Sprintf("series:%d:%s", index, col.Name))).String()
}
