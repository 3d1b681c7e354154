package textconv

import (
	"net/url"

	"github.com/cockroachdb/errors"
)

// URL is an absolute URL whose text form is its canonical string.
type URL struct {
	u url.URL
}

// ParseURL parses s, which must carry a scheme.
func ParseURL(s string) (URL, error) {
	var u URL
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return URL{}, err
	}
	return u, nil
}

func (u URL) String() string { return u.u.String() }

// URL returns a copy of the parsed net/url value.
func (u URL) URL() *url.URL {
	c := u.u
	return &c
}

func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.u.String()), nil
}

func (u *URL) UnmarshalText(text []byte) error {
	parsed, err := url.Parse(string(text))
	if err != nil {
		return err
	}
	if parsed.Scheme == "" {
		return errors.Newf("url %q has no scheme", text)
	}
	u.u = *parsed
	return nil
}
