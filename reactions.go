package samidb

import (
	"context"
	"strings"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
)

// Reaction names a random reaction image served by the img endpoint.
type Reaction string

// Known reactions.
const (
	Blush    Reaction = "blush"
	Bonk     Reaction = "bonk"
	Boop     Reaction = "boop"
	Cry      Reaction = "cry"
	Cuddle   Reaction = "cuddle"
	GroupHug Reaction = "grouphug"
	Hug      Reaction = "hug"
	Kiss     Reaction = "kiss"
	Lick     Reaction = "lick"
	Nom      Reaction = "nom"
	Pat      Reaction = "pat"
	Slap     Reaction = "slap"
	Smile    Reaction = "smile"
	Nuggies  Reaction = "nuggies"
	Corn     Reaction = "corn"
)

// reactionTable maps every reaction to the subtype requested from the img endpoint.
var reactionTable = []struct {
	reaction Reaction
	subtype  string
	media    string
}{
	{Blush, "blush", "gif"},
	{Bonk, "bonk", "gif"},
	{Boop, "boop", "gif"},
	{Cry, "cry", "gif"},
	{Cuddle, "cuddle", "gif"},
	{GroupHug, "grouphug", "gif"},
	{Hug, "hug", "gif"},
	{Kiss, "kiss", "gif"},
	{Lick, "lick", "gif"},
	{Nom, "nom", "gif"},
	{Pat, "pat", "gif"},
	{Slap, "slap", "gif"},
	{Smile, "smile", "gif"},
	{Nuggies, "nuggies", "gif"},
	{Corn, "corn", "image"},
}

// Reactions returns every known reaction in a stable order.
func Reactions() []Reaction {
	out := make([]Reaction, len(reactionTable))
	for i, row := range reactionTable {
		out[i] = row.reaction
	}
	return out
}

// ParseReaction looks a reaction up by name, ignoring case and surrounding space.
func ParseReaction(name string) (Reaction, bool) {
	r := Reaction(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := r.subtype(); ok {
		return r, true
	}
	return "", false
}

// subtype returns the img subtype for the reaction.
func (r Reaction) subtype() (string, bool) {
	for _, row := range reactionTable {
		if row.reaction == r {
			return row.subtype, true
		}
	}
	return "", false
}

// Description is a short human readable summary, e.g. "Random hug gif".
func (r Reaction) Description() string {
	for _, row := range reactionTable {
		if row.reaction == r {
			return "Random " + row.subtype + " " + row.media
		}
	}
	return ""
}

// String returns the reaction name.
func (r Reaction) String() string {
	return string(r)
}

// Reaction fetches a random image for r. It is shorthand for
// Get(ctx, "img", subtype).
func (c *Client) Reaction(ctx context.Context, r Reaction) (*Result, error) {
	subtype, ok := r.subtype()
	if !ok {
		return nil, &errors.UnknownEndpointError{Resource: "reaction", Name: string(r)}
	}
	return c.Get(ctx, constants.ImageEndpoint, subtype)
}
