package steam

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Page selects which steam:// action an Opener uses
type Page string

const (
	PageStore   Page = "store"     // store page
	PageLibrary Page = "nav/games" // library details
	PageRun     Page = "rungameid" // launch the app
	PageInstall Page = "install"   // start an install
)

// ParsePage maps a short page name (store, library, run, install) to its
// Page. An empty name means the store.
func ParsePage(name string) (Page, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "store":
		return PageStore, nil
	case "library":
		return PageLibrary, nil
	case "run":
		return PageRun, nil
	case "install":
		return PageInstall, nil
	default:
		return "", fmt.Errorf("unknown steam page %q (want store, library, run or install)", name)
	}
}

// Opener implements ports.StoreOpener
type Opener struct {
	page Page
}

// NewOpener creates an opener for the given page kind.
// An empty page opens the store.
func NewOpener(page Page) *Opener {
	if page == "" {
		page = PageStore
	}
	return &Opener{page: page}
}

// OpenApp opens the app in the Steam client
func (o *Opener) OpenApp(id int) error {
	uri, err := o.BuildURI(id)
	if err != nil {
		return err
	}
	return o.openURI(uri)
}

// BuildURI constructs the steam:// URI for an app id
func (o *Opener) BuildURI(id int) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("invalid app id: %d", id)
	}
	if o.page == PageLibrary {
		return fmt.Sprintf("steam://nav/games/details/%d", id), nil
	}
	return fmt.Sprintf("steam://%s/%d", o.page, id), nil
}

func (o *Opener) openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
