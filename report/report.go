// Package report writes password reuse groups as plain text
package report

import (
	"bufio"
	"io"

	"github.com/jmmcatee/dupefinder/common"
	"github.com/jmmcatee/dupefinder/reuse"
)

// Renderer formats groups with a fixed set of messages
type Renderer struct {
	msgs common.Messages
}

// NewRenderer returns a Renderer using msgs. Empty messages fall back to the
// built-in ones.
func NewRenderer(msgs common.Messages) *Renderer {
	def := common.DefaultMessages()

	if msgs.SharedPlural == "" {
		msgs.SharedPlural = def.SharedPlural
	}
	if msgs.SharedSingular == "" {
		msgs.SharedSingular = def.SharedSingular
	}
	if msgs.NoMatches == "" {
		msgs.NoMatches = def.NoMatches
	}

	return &Renderer{msgs: msgs}
}

// Render writes every group to w: its accounts one per line, then a summary
// line ending in hash:plaintext. Groups are separated by a blank line. An
// empty list produces the single no matches line.
func (r *Renderer) Render(w io.Writer, groups []reuse.Group) error {
	bw := bufio.NewWriter(w)

	if len(groups) == 0 {
		bw.WriteString(r.msgs.NoMatches + "\n")
		return bw.Flush()
	}

	for i, g := range groups {
		if i > 0 {
			bw.WriteString("\n")
		}

		for _, account := range g.Accounts {
			bw.WriteString(account + "\n")
		}

		summary := r.msgs.SharedPlural
		if g.Size() == 1 {
			summary = r.msgs.SharedSingular
		}
		bw.WriteString(summary + " " + g.Hash + ":" + g.Password + "\n")
	}

	// bufio keeps the first write error, Flush reports it
	return bw.Flush()
}
