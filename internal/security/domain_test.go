package security

import "testing"

func newTestDomains() *Domains {
	return NewDomains(
		[]string{".gov.in", ".nic.in", "india.gov.in", "mygov.in"},
		[]string{"wikipedia.org", "quora.com"},
	)
}

func TestAllowURL(t *testing.T) {
	d := newTestDomains()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"gov suffix", "https://pmkisan.gov.in/RegistrationForm.aspx", false},
		{"nic suffix", "https://uidai.nic.in/en/", false},
		{"exact allow entry", "https://mygov.in/campaigns", false},
		{"subdomain of allow entry", "https://services.india.gov.in/service/detail", false},
		{"plain http allowed", "http://pmkisan.gov.in/", false},
		{"denied host", "https://en.wikipedia.org/wiki/PM-KISAN", true},
		{"denied apex", "https://quora.com/some-question", true},
		{"unlisted host", "https://example.com/pm-kisan", true},
		{"lookalike suffix", "https://fakegov.in/scheme", true},
		{"lookalike embedded", "https://gov.in.example.com/", true},
		{"ftp scheme", "ftp://pmkisan.gov.in/file", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"empty host", "https:///path", true},
		{"garbage", "::not a url::", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.AllowURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("AllowURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestAllowHost_CaseInsensitive(t *testing.T) {
	d := newTestDomains()
	if err := d.AllowHost("PMKisan.GOV.IN"); err != nil {
		t.Errorf("AllowHost() = %v, want nil", err)
	}
}

func TestAllowHost_DenyWinsOverAllow(t *testing.T) {
	d := NewDomains([]string{".gov.in"}, []string{"blocked.gov.in"})
	if err := d.AllowHost("blocked.gov.in"); err == nil {
		t.Error("AllowHost() = nil, want deny-list error")
	}
	if err := d.AllowHost("other.gov.in"); err != nil {
		t.Errorf("AllowHost() = %v, want nil", err)
	}
}

func TestAllowHost_EmptyAllowListPermitsNothing(t *testing.T) {
	d := NewDomains(nil, nil)
	if err := d.AllowHost("india.gov.in"); err == nil {
		t.Error("AllowHost() = nil, want error with empty allow list")
	}
}

func TestMatchDomain(t *testing.T) {
	tests := []struct {
		host    string
		pattern string
		want    bool
	}{
		{"pmkisan.gov.in", ".gov.in", true},
		{"gov.in", ".gov.in", true},
		{"mygov.in", ".gov.in", false},
		{"india.gov.in", "india.gov.in", true},
		{"services.india.gov.in", "india.gov.in", true},
		{"notindia.gov.in", "india.gov.in", false},
	}

	for _, tt := range tests {
		if got := matchDomain(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchDomain(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}
