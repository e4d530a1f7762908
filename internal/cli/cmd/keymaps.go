package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/infrastructure/persistence/jsonfile"
	"github.com/bnema/tapmap/internal/infrastructure/render"
	"github.com/bnema/tapmap/internal/ui/overlay"
)

var (
	addX, addY   int
	addSize      int
	addCombo     string
	addHold      bool
	addRectangle bool
	addLabel     string

	previewOut    string
	previewWidth  int
	previewHeight int
	previewEdit   bool

	importAppend bool
)

var keymapsCmd = &cobra.Command{
	Use:     "keymaps",
	Aliases: []string{"km"},
	Short:   "Inspect and edit keymaps",
	Long: `List, add and remove keymaps of the configured profile, render them to
an image, or move them between the JSON and SQLite backends.`,
}

var keymapsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List keymaps with their native touch points",
	RunE:    runKeymapsList,
}

var keymapsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a keymap centered on a native pixel",
	Long: `Add a keymap centered on native pixel (--x, --y).

Examples:
  tapmap keymaps add --x 1008 --y 567 --combo A
  tapmap keymaps add --x 200 --y 600 --size 160 --combo Shift+W --hold`,
	RunE: runKeymapsAdd,
}

var keymapsDeleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Delete the keymap at index (see 'keymaps list')",
	Args:    cobra.ExactArgs(1),
	RunE:    runKeymapsDelete,
}

var keymapsProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored keymap profiles",
	RunE:  runKeymapsProfiles,
}

var keymapsPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the keymaps to a PNG image",
	Long: `Render the keymaps as the overlay draws them, at the device's native
size unless --width/--height are given.`,
	RunE: runKeymapsPreview,
}

var keymapsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the keymap file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := jsonfile.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var keymapsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the keymaps as JSON to stdout",
	RunE:  runKeymapsExport,
}

var keymapsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace (or extend with --append) the keymaps from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeymapsImport,
}

func init() {
	rootCmd.AddCommand(keymapsCmd)
	keymapsCmd.AddCommand(keymapsListCmd, keymapsAddCmd, keymapsDeleteCmd, keymapsProfilesCmd,
		keymapsPreviewCmd, keymapsSchemaCmd, keymapsExportCmd, keymapsImportCmd)

	keymapsAddCmd.Flags().IntVar(&addX, "x", -1, "center x in native pixels")
	keymapsAddCmd.Flags().IntVar(&addY, "y", -1, "center y in native pixels")
	keymapsAddCmd.Flags().IntVar(&addSize, "size", 100, "diameter (or side) in native pixels")
	keymapsAddCmd.Flags().StringVar(&addCombo, "combo", "", "key combo, e.g. A or Shift+A")
	keymapsAddCmd.Flags().BoolVar(&addHold, "hold", false, "press and hold instead of tap")
	keymapsAddCmd.Flags().BoolVar(&addRectangle, "rect", false, "rectangle instead of circle")
	keymapsAddCmd.Flags().StringVar(&addLabel, "label", "", "text drawn instead of the combo")
	_ = keymapsAddCmd.MarkFlagRequired("x")
	_ = keymapsAddCmd.MarkFlagRequired("y")

	keymapsPreviewCmd.Flags().StringVarP(&previewOut, "output", "o", "keymaps.png", "PNG file to write")
	keymapsPreviewCmd.Flags().IntVar(&previewWidth, "width", 0, "image width (default native width)")
	keymapsPreviewCmd.Flags().IntVar(&previewHeight, "height", 0, "image height (default native height)")
	keymapsPreviewCmd.Flags().BoolVar(&previewEdit, "edit", false, "draw the edit-mode grid and tint")

	keymapsImportCmd.Flags().BoolVar(&importAppend, "append", false, "append instead of replacing")
}

func runKeymapsList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	store, err := a.LoadStore(a.Ctx())
	if err != nil {
		return err
	}
	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), r.RenderTable(a.Config.Keymaps.Profile, store.All(), a.Native()))
	return nil
}

func runKeymapsAdd(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	native := a.Native()
	if addX < 0 || addY < 0 || addX >= native.Width || addY >= native.Height {
		return fmt.Errorf("point %d,%d is outside the %dx%d display", addX, addY, native.Width, native.Height)
	}
	if addSize <= 0 {
		return fmt.Errorf("size must be positive, got %d", addSize)
	}

	var combo entity.KeyCombo
	if addCombo != "" {
		if combo, err = entity.ParseKeyCombo(addCombo); err != nil {
			return err
		}
	}

	w, h := float64(native.Width), float64(native.Height)
	half := float64(addSize) / 2
	km := entity.NewKeymap(
		entity.Vec{X: (float64(addX) - half) / w, Y: (float64(addY) - half) / h},
		entity.Vec{X: float64(addSize) / w, Y: float64(addSize) / h},
	)
	km.SetCombo(combo)
	km.Hold = addHold
	km.Label = addLabel
	if addRectangle {
		km.Shape = entity.Rectangle{}
	}
	if err := km.Validate(); err != nil {
		return err
	}

	store, err := a.LoadStore(a.Ctx())
	if err != nil {
		return err
	}
	store.Append(km)
	if err := store.Commit(a.Ctx()); err != nil {
		return err
	}

	x, y := km.NativeCenter(native)
	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), r.RenderSuccess(fmt.Sprintf("added keymap %d (%s) tapping %d,%d",
		store.Len()-1, km.DisplayLabel(), x, y)))
	return nil
}

func runKeymapsDelete(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	store, err := a.LoadStore(a.Ctx())
	if err != nil {
		return err
	}
	if idx < 0 || idx >= store.Len() {
		return fmt.Errorf("index %d out of range (0-%d)", idx, store.Len()-1)
	}
	km := store.At(idx)
	store.Remove(km)
	if err := store.Commit(a.Ctx()); err != nil {
		return err
	}

	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), r.RenderSuccess(fmt.Sprintf("deleted keymap %d (%s)", idx, km.DisplayLabel())))
	return nil
}

func runKeymapsProfiles(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	profiles, err := a.Profiles(a.Ctx())
	if err != nil {
		return err
	}
	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprint(cmd.OutOrStdout(), r.RenderProfiles(profiles, a.Config.Keymaps.Profile))
	return nil
}

func runKeymapsPreview(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	store, err := a.LoadStore(a.Ctx())
	if err != nil {
		return err
	}

	native := a.Native()
	width, height := previewWidth, previewHeight
	if width <= 0 {
		width = native.Width
	}
	if height <= 0 {
		height = native.Height
	}

	mode := overlay.ModePassThrough
	if previewEdit {
		mode = overlay.ModeCapture
	}
	// repaint synchronously: the frame is written before SetGeometry returns
	surface := render.NewPreviewSurface(a.Ctx(), previewOut, nil)
	view := overlay.NewView(store, surface, mode, overlay.Options{
		DeleteRadius: a.Config.Overlay.DeleteRadiusPx,
		GridSize:     a.Config.Overlay.GridSizePx,
	})
	surface.SetPainter(func(c port.Canvas) { view.Render(c, overlay.Session{}) })
	view.Show()
	view.SetGeometry(entity.DisplayRect{Width: float64(width), Height: float64(height)})

	if surface.Frames() == 0 {
		return fmt.Errorf("no frame rendered")
	}
	if _, err := os.Stat(previewOut); err != nil {
		return fmt.Errorf("preview not written: %w", err)
	}
	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), r.RenderPreview(previewOut, width, height))
	return nil
}

func runKeymapsExport(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	store, err := a.LoadStore(a.Ctx())
	if err != nil {
		return err
	}
	data, err := jsonfile.Encode(store.All())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}

func runKeymapsImport(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err != nil {
		return err
	}
	imported, err := jsonfile.NewKeymapRepository(args[0]).Load(a.Ctx())
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	store, err := a.LoadStore(a.Ctx())
	if err != nil {
		return err
	}
	if !importAppend {
		for store.Len() > 0 {
			store.Remove(store.At(store.Len() - 1))
		}
	}
	for _, km := range imported {
		store.Append(km)
	}
	if err := store.Commit(a.Ctx()); err != nil {
		return err
	}

	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), r.RenderSuccess(fmt.Sprintf("imported %d keymaps into %q (%d total)",
		len(imported), a.Config.Keymaps.Profile, store.Len())))
	return nil
}
