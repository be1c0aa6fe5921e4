package ports

// StoreOpener opens an app's page in the Steam client
type StoreOpener interface {
	// OpenApp opens the store page for the given app id using the
	// steam:// URI scheme
	OpenApp(id int) error
}
