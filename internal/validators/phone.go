package validators

import "strings"

// IsPhoneValid aceita telefones brasileiros com DDD, formatados ou não:
// 10 ou 11 dígitos, ou 12/13 com o código 55.
func IsPhoneValid(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(" ()-+.", r):
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 13
}
