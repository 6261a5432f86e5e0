package common

// Durable storage keys. The catalog service owns the backup keys, the
// session gate owns the session key; nothing else writes them.
const (
	CatalogBackupKey        = "rtu_catalog_backup"
	CatalogBackupSavedAtKey = "rtu_catalog_backup_saved_at"
	AdminSessionKey         = "rtu_admin_session"

	// SessionActiveValue is the only value that counts as logged in.
	SessionActiveValue = "true"
)
