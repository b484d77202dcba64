package customizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thatcatcamp/tint/internal/palettes"
)

// policyMessage explains a rule violation to the user.
func policyMessage(err error) (title, description string) {
	switch {
	case errors.Is(err, palettes.ErrProtectedName):
		return "Name not allowed", `"Default Palette" is reserved. Please choose another name.`
	case errors.Is(err, palettes.ErrProtectedDelete):
		return "Cannot Delete Default Palette", "The default palette cannot be deleted. You can modify it or create new palettes instead."
	case errors.Is(err, palettes.ErrLastPalette):
		return "Cannot Delete Palette", "You must keep at least one palette in your collection."
	default:
		return "Not allowed", err.Error()
	}
}

// OpenSaveDialog marks the save dialog as open.
func (c *Customizer) OpenSaveDialog() {
	c.state.SetSaveDialogOpen(true)
}

// SavePalette stores the current buffer under name. With existingID the
// stored palette is overwritten.
func (c *Customizer) SavePalette(ctx context.Context, name string, existingID *uint, isDuoTone bool) (uint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.state.SetSaveDialogOpen(false)

	snap := c.state.Snapshot()
	id, err := c.store.Save(ctx, palettes.SaveInput{
		Name:         name,
		LightColors:  snap.LightColors,
		DarkColors:   snap.DarkColors,
		BorderRadius: snap.BorderRadius,
		IsDuoTone:    isDuoTone,
	}, existingID)
	if err != nil {
		return 0, c.saveFailed(err)
	}

	if err := c.refreshPalettes(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to refresh palettes after save")
	}
	c.notify("Palette saved", fmt.Sprintf("%q has been saved to your collection.", name))
	return id, nil
}

func (c *Customizer) saveFailed(err error) error {
	switch {
	case palettes.IsPolicyError(err):
		c.fail(policyMessage(err))
	case errors.Is(err, palettes.ErrEmptyName):
		err = &ValidationError{Field: "name", Message: "Please enter a palette name"}
		c.fail("Error saving palette", "Please enter a palette name.")
	case errors.Is(err, palettes.ErrInvalidRadius):
		err = &ValidationError{Field: "borderRadius", Message: "must be between 0 and 2"}
		c.fail("Error saving palette", "The border radius must be between 0 and 2.")
	case errors.Is(err, palettes.ErrNotFound):
		c.fail("Error saving palette", "The palette you are overwriting no longer exists.")
	default:
		c.log.Error().Err(err).Msg("failed to save palette")
		c.fail("Error saving palette", "There was an error saving your palette. Please try again.")
	}
	return err
}

// LoadPalette makes a saved palette the current theme.
func (c *Customizer) LoadPalette(ctx context.Context, id uint) (*palettes.Palette, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, palettes.ErrNotFound) {
			c.log.Error().Err(err).Uint("id", id).Msg("failed to load palette")
		}
		c.fail("Error loading palette", "There was an error loading the palette. Please try again.")
		return nil, err
	}

	c.state.SetTheme(p.LightColors, p.DarkColors, p.BorderRadius)
	c.notify("Palette loaded", "The selected palette has been applied.")
	return p, nil
}

// DeletePalette removes a saved palette after the user confirms. The
// default palette and the last palette are refused before asking.
func (c *Customizer) DeletePalette(ctx context.Context, id uint) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.store.CheckDelete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, palettes.ErrProtectedDelete):
			title, description := policyMessage(err)
			inform(c.dialogFor(ctx), title, description)
			return OutcomeRejected, err
		case palettes.IsPolicyError(err):
			c.fail(policyMessage(err))
			return OutcomeRejected, err
		default:
			c.fail("Error deleting palette", "There was an error deleting the palette. Please try again.")
			return OutcomeDone, err
		}
	}

	ok := confirm(ctx, c.dialogFor(ctx), ConfirmOptions{
		Title:       "Delete Palette",
		Description: fmt.Sprintf("Are you sure you want to delete %q?", p.Name),
		ConfirmText: "Delete",
	})
	if !ok {
		return OutcomeCancelled, nil
	}

	if err := c.store.Delete(ctx, id); err != nil {
		if palettes.IsPolicyError(err) {
			c.fail(policyMessage(err))
			return OutcomeRejected, err
		}
		c.log.Error().Err(err).Uint("id", id).Msg("failed to delete palette")
		c.fail("Error deleting palette", "There was an error deleting the palette. Please try again.")
		return OutcomeDone, err
	}

	if err := c.refreshPalettes(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to refresh palettes after delete")
	}
	c.notify("Palette deleted", fmt.Sprintf("%q has been removed from your collection.", p.Name))
	return OutcomeDone, nil
}

// ImportPalette saves a palette file to the collection and applies it.
func (c *Customizer) ImportPalette(ctx context.Context, data []byte) (uint, *palettes.ImportedPalette, error) {
	imported, err := palettes.Import(data)
	if err != nil {
		var ie *palettes.ImportError
		if errors.As(err, &ie) {
			field := ie.Field
			if field == "" {
				field = "data"
			}
			err = &ValidationError{Field: field, Message: ie.Message}
		}
		c.fail("Error importing palette", "There was an error importing the palette. Please check the JSON format.")
		return 0, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.store.Save(ctx, imported.SaveInput(), nil)
	if err != nil {
		if palettes.IsPolicyError(err) {
			c.fail(policyMessage(err))
			return 0, nil, err
		}
		c.log.Error().Err(err).Msg("failed to save imported palette")
		c.fail("Error importing palette", "There was an error importing the palette. Please try again.")
		return 0, nil, err
	}

	if err := c.refreshPalettes(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to refresh palettes after import")
	}
	c.state.SetTheme(imported.LightColors, imported.DarkColors, imported.BorderRadius)
	c.notify("Palette imported", fmt.Sprintf("%q has been imported to your collection.", imported.Name))
	return id, imported, nil
}

// Export is an encoded palette ready for download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportPalette encodes a saved palette.
func (c *Customizer) ExportPalette(ctx context.Context, id uint, format palettes.Format) (*Export, error) {
	p, err := c.store.Get(ctx, id)
	if err != nil {
		c.fail("Error exporting palette", "There was an error exporting your palette. Please try again.")
		return nil, err
	}
	data, err := palettes.Encode(p, format)
	if err != nil {
		c.fail("Error exporting palette", "There was an error exporting your palette. Please try again.")
		return nil, err
	}
	c.notify("Palette exported", "Your palette has been exported as a "+format.Label()+" file.")
	return &Export{
		Filename:    format.Filename(p.Name),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// ExportCurrent encodes the unsaved buffer as "Current Palette".
func (c *Customizer) ExportCurrent(format palettes.Format) (*Export, error) {
	snap := c.state.Snapshot()
	p := &palettes.Palette{
		Name:         palettes.CurrentName,
		CreatedAt:    time.Now(),
		LightColors:  snap.LightColors,
		DarkColors:   snap.DarkColors,
		BorderRadius: snap.BorderRadius,
	}
	data, err := palettes.Encode(p, format)
	if err != nil {
		c.fail("Error exporting palette", "There was an error exporting your palette. Please try again.")
		return nil, err
	}
	c.notify("Current palette exported", "Your current palette has been exported as a "+format.Label()+" file.")

	filename := palettes.CurrentFilename
	if format == palettes.FormatYAML {
		filename = format.Filename("current")
	}
	return &Export{Filename: filename, ContentType: format.ContentType(), Data: data}, nil
}
