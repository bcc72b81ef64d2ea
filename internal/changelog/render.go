package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderOptions controls the markdown layout.
type RenderOptions struct {
	// Heading is the first line of the document, e.g. "# CHANGELOG".
	Heading string
	// UnreleasedHeading is the title of the unreleased section.
	UnreleasedHeading string
	// Bullet is the list marker: "-", "*" or "+".
	Bullet string
}

// DefaultRenderOptions returns the layout used when nothing is configured.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Heading:           "# CHANGELOG",
		UnreleasedHeading: "Unreleased",
		Bullet:            "-",
	}
}

func (o RenderOptions) withDefaults() RenderOptions {
	d := DefaultRenderOptions()
	if o.Heading == "" {
		o.Heading = d.Heading
	}
	if o.UnreleasedHeading == "" {
		o.UnreleasedHeading = d.UnreleasedHeading
	}
	if o.Bullet == "" {
		o.Bullet = d.Bullet
	}
	return o
}

// Render writes the changelog as markdown. Blocks are separated by one blank
// line and the output ends with a single newline.
//
// The function is pure: the same tree and options always produce identical
// output, and the file system is never touched.
func Render(c *Changelog, w io.Writer, opts RenderOptions) error {
	r := &renderer{w: w, opts: opts.withDefaults()}

	if err := r.block(r.opts.Heading); err != nil {
		return fmt.Errorf("rendering heading: %w", err)
	}

	if c.Unreleased != nil && !c.Unreleased.IsEmpty() {
		if err := r.renderBucket(c.Unreleased); err != nil {
			return fmt.Errorf("rendering unreleased: %w", err)
		}
	}

	for i := range c.Releases {
		if err := r.renderBucket(&c.Releases[i]); err != nil {
			return fmt.Errorf("rendering release %s: %w", c.Releases[i].Label, err)
		}
	}

	if epilogue := strings.TrimRight(c.Epilogue, " \t\r\n"); strings.TrimSpace(epilogue) != "" {
		if err := r.block(epilogue); err != nil {
			return fmt.Errorf("rendering epilogue: %w", err)
		}
	}

	return r.finish()
}

// RenderString is a convenience function that renders to a string.
func RenderString(c *Changelog, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := Render(c, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

type renderer struct {
	w       io.Writer
	opts    RenderOptions
	started bool
}

// block writes text preceded by a blank line when it is not the first block.
func (r *renderer) block(text string) error {
	if r.started {
		if _, err := io.WriteString(r.w, "\n\n"); err != nil {
			return err
		}
	}
	r.started = true
	_, err := io.WriteString(r.w, text)
	return err
}

func (r *renderer) finish() error {
	_, err := io.WriteString(r.w, "\n")
	return err
}

func (r *renderer) renderBucket(b *Bucket) error {
	if err := r.block("## " + r.bucketTitle(b.Label)); err != nil {
		return err
	}

	if notes := strings.TrimSpace(b.Notes); notes != "" {
		if err := r.block(notes); err != nil {
			return err
		}
	}

	for _, c := range b.Categories {
		if err := r.renderCategory(c); err != nil {
			return fmt.Errorf("category %s: %w", c.Kind, err)
		}
	}
	return nil
}

func (r *renderer) bucketTitle(l Label) string {
	if l.IsUnreleased() {
		return r.opts.UnreleasedHeading
	}
	return l.Version()
}

func (r *renderer) renderCategory(c Category) error {
	if err := r.block("### " + c.Kind.Title()); err != nil {
		return err
	}

	lines := make([]string, 0, c.EntryCount()+len(c.Groups))
	for _, g := range c.Groups {
		lines = append(lines, r.opts.Bullet+" "+g.Name)
		for _, e := range g.Entries {
			lines = append(lines, formatEntry(e.Text, r.opts.Bullet)...)
		}
	}
	return r.block(strings.Join(lines, "\n"))
}

// formatEntry renders entry text as a nested list item. A leading bullet
// typed by the author is dropped and continuation lines are indented under
// the item.
func formatEntry(text, bullet string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(text, marker) {
			text = strings.TrimSpace(text[len(marker):])
			break
		}
	}

	if text == "" {
		return []string{"  " + bullet}
	}

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	lines = append(lines, "  "+bullet+" "+strings.TrimRight(raw[0], " \t"))
	for _, line := range raw[1:] {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, "    "+line)
	}
	return lines
}
