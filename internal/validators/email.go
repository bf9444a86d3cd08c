package validators

import (
	"net"
	"net/mail"
	"strings"
)

// lookup é trocado nos testes para não depender de DNS.
var lookupDomain = func(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailValid checa a sintaxe do endereço sem consultar DNS.
func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	return lookupDomain(email[at+1:])
}
