package dispatch

import (
	"fmt"
	"sort"
	"strings"
)

// Provider is the SMTP submission endpoint for a consumer mail service.
// All supported providers use STARTTLS on port 587.
type Provider struct {
	Name string
	Host string
	Port int
}

var (
	gmail   = Provider{Name: "Gmail", Host: "smtp.gmail.com", Port: 587}
	outlook = Provider{Name: "Outlook", Host: "smtp-mail.outlook.com", Port: 587}
	yahoo   = Provider{Name: "Yahoo", Host: "smtp.mail.yahoo.com", Port: 587}
	aol     = Provider{Name: "AOL", Host: "smtp.aol.com", Port: 587}
)

// providersByDomain maps sender-address domains to SMTP endpoints.
var providersByDomain = map[string]Provider{
	"gmail.com":   gmail,
	"outlook.com": outlook,
	"hotmail.com": outlook,
	"live.com":    outlook,
	"yahoo.com":   yahoo,
	"yahoo.co.uk": yahoo,
	"aol.com":     aol,
}

// ProviderFor resolves the SMTP endpoint for a sender address by its
// domain. Unrecognized domains are an error; the caller is told which
// providers are supported.
func ProviderFor(address string) (Provider, error) {
	_, domain, ok := strings.Cut(address, "@")
	if !ok {
		return Provider{}, fmt.Errorf("invalid sender address %q", address)
	}
	provider, ok := providersByDomain[strings.ToLower(domain)]
	if !ok {
		return Provider{}, fmt.Errorf("email provider for %q not recognized; supported: %s",
			domain, strings.Join(supportedProviders(), ", "))
	}
	return provider, nil
}

func supportedProviders() []string {
	seen := map[string]bool{}
	var names []string
	for _, p := range providersByDomain {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names
}
