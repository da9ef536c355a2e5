package dispatch

import (
	"context"
	"fmt"

	"github.com/linkdock/linkdock/host"
	"github.com/linkdock/linkdock/intent"
)

const (
	// copyOffset is applied to each duplicate relative to its own source
	// so the copies do not sit exactly on the originals.
	copyOffset = 20

	placeholderWidth  = 400
	placeholderHeight = 300
	labelInset        = 24

	selectFirstMessage = "Please select at least one layer to copy"
)

var (
	// Placeholder gradient, indigo fading into pink.
	placeholderGradientStart = host.Color{R: 0.39, G: 0.4, B: 0.95, A: 1}
	placeholderGradientEnd   = host.Color{R: 0.93, G: 0.28, B: 0.6, A: 1}

	labelFont = host.Font{Family: "Inter", Style: "Regular"}
)

// copySelection duplicates every selected node in place. Each duplicate
// is offset from its own source, the duplicates become the new selection
// and the viewport frames them.
func (d *Dispatcher) copySelection(ctx context.Context, m *intent.PreviewAction) error {
	selection, err := d.host.Selection(ctx)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		return d.host.Notify(ctx, selectFirstMessage)
	}

	clones := make([]string, 0, len(selection))
	for _, src := range selection {
		clone, err := d.host.CloneNode(ctx, src.ID)
		if err != nil {
			return err
		}
		if err := d.host.MoveNode(ctx, clone.ID, src.X+copyOffset, src.Y+copyOffset); err != nil {
			return err
		}
		clones = append(clones, clone.ID)
	}

	if err := d.host.SetSelection(ctx, clones); err != nil {
		return err
	}
	if err := d.host.ScrollAndZoomIntoView(ctx, clones); err != nil {
		return err
	}
	return d.host.Notify(ctx, fmt.Sprintf("Copied \"%s\"", m.Title))
}

// insertPlaceholder creates a placeholder frame for a design link,
// centered on the viewport, with a gradient fill and the link title as a
// label. The link URL is not fetched; the frame stands in for the real
// content.
func (d *Dispatcher) insertPlaceholder(ctx context.Context, m *intent.PreviewAction) error {
	center, err := d.host.ViewportCenter(ctx)
	if err != nil {
		return err
	}

	frame, err := d.host.CreateFrame(ctx)
	if err != nil {
		return err
	}
	if err := d.host.SetNodeName(ctx, frame.ID, m.Title); err != nil {
		return err
	}
	if err := d.host.ResizeNode(ctx, frame.ID, placeholderWidth, placeholderHeight); err != nil {
		return err
	}
	if err := d.host.MoveNode(ctx, frame.ID, center.X-placeholderWidth/2, center.Y-placeholderHeight/2); err != nil {
		return err
	}
	if err := d.host.SetFills(ctx, frame.ID, []host.Paint{
		host.LinearGradient(
			host.ColorStop{Position: 0, Color: placeholderGradientStart},
			host.ColorStop{Position: 1, Color: placeholderGradientEnd},
		),
	}); err != nil {
		return err
	}

	// The editor refuses text edits until the font is loaded.
	if err := d.host.LoadFont(ctx, labelFont); err != nil {
		return err
	}
	label, err := d.host.CreateText(ctx)
	if err != nil {
		return err
	}
	if err := d.host.SetCharacters(ctx, label.ID, m.Title); err != nil {
		return err
	}
	if err := d.host.AppendChild(ctx, frame.ID, label.ID); err != nil {
		return err
	}
	if err := d.host.MoveNode(ctx, label.ID, labelInset, labelInset); err != nil {
		return err
	}

	if err := d.host.AppendToPage(ctx, frame.ID); err != nil {
		return err
	}
	if err := d.host.SetSelection(ctx, []string{frame.ID}); err != nil {
		return err
	}
	if err := d.host.ScrollAndZoomIntoView(ctx, []string{frame.ID}); err != nil {
		return err
	}
	return d.host.Notify(ctx, fmt.Sprintf("Inserted \"%s\"", m.Title))
}

// openLink opens the link in the user's browser. The editor cannot
// navigate to a URL inside the document, so the browser is the only
// destination.
func (d *Dispatcher) openLink(ctx context.Context, m *intent.PreviewAction) error {
	if err := d.host.OpenURL(ctx, m.URL); err != nil {
		return err
	}
	return d.host.Notify(ctx, fmt.Sprintf("Opening \"%s\" in browser", m.Title))
}
