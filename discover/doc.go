// Package discover selects the source files whose licence headers are
// checked.
//
// A [Walker] walks a project directory and returns files with a handled
// extension (see [HandledExtensions]) plus every file directly inside a
// "bin" directory, which usually holds extension-less scripts. Paths are
// filtered with exclusion [Rule] values; [DefaultExclusions] supplies the
// rules for a project, recognizing GLPI plugins and the GLPI core.
//
//	w, err := discover.NewWalker(dir, discover.WithExclusions(discover.DefaultExclusions(dir)...))
//	if err != nil {
//		return err
//	}
//
//	files, err := w.Files(ctx)
package discover
