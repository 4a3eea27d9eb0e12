package common

// File permission constants used when writing files
const (
	// FilePermissionNormal is used for config files and generated reports
	FilePermissionNormal = 0o644

	// DirPermissionNormal is used for directories created for those files
	DirPermissionNormal = 0o755
)
