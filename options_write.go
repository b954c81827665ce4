package swfkit

// SaveOption configures behavior when saving movies.
//
//	err := movie.Save(
//	    swfkit.WithBackup(".bak"),
//	    swfkit.WithValidation(),
//	)
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time
}

func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup keeps the previous file under the original name plus suffix.
// WithBackup(".bak") turns "intro.swf" into "intro.swf.bak" before the
// new movie takes its place. An existing backup is overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing and checks that its
// digest matches the movie in memory.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the modification time of the file being
// replaced.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
