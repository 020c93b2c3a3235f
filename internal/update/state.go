package update

import (
	"github.com/sandeepkv93/daygrid/internal/prefs"
)

// loadTheme reads the persisted theme once at startup. fallback wins when
// nothing was saved yet.
func loadTheme(store *prefs.Store, fallback prefs.Theme) (prefs.Theme, error) {
	if store == nil {
		return fallback, nil
	}
	p, err := store.Load(prefs.Prefs{Theme: fallback})
	if err != nil {
		return fallback, err
	}
	return p.Theme, nil
}

func (m *Model) setTheme(theme prefs.Theme) error {
	m.Theme = theme
	if m.Prefs == nil {
		return nil
	}
	return m.Prefs.Save(prefs.Prefs{Theme: theme})
}

func (m Model) dark() bool {
	return m.Theme == prefs.ThemeDark
}
