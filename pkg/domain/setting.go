package domain

// setting keys stored in the settings table
const (
	SettingLastFullSync = "last_full_sync"
)
