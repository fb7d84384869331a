package checker

// PremiumTLDs is a curated list of valuable TLDs for short domain scanning
var PremiumTLDs = []string{
	"com", "net", "org", "io", "dev", "app", "ai", "co",
	"me", "tv", "gg", "so", "to", "is", "sh", "ly",
	"de", "uk", "es", "fr", "it", "nl", "ch", "at",
}

const nameChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateMultiTLD generates the same name across multiple TLDs
func GenerateMultiTLD(name string, tlds []string) []string {
	if tlds == nil {
		tlds = PremiumTLDs
	}
	domains := make([]string, len(tlds))
	for i, tld := range tlds {
		domains[i] = name + "." + tld
	}
	return domains
}

// GenerateShortDomains generates every name of the given length (1-3) that
// starts with prefix, across the premium TLDs.
func GenerateShortDomains(length int, prefix string) []string {
	if length < 1 || length > 3 || len(prefix) > length {
		return nil
	}

	names := []string{prefix}
	for i := len(prefix); i < length; i++ {
		next := make([]string, 0, len(names)*len(nameChars))
		for _, n := range names {
			for _, c := range nameChars {
				next = append(next, n+string(c))
			}
		}
		names = next
	}

	var domains []string
	for _, name := range names {
		domains = append(domains, GenerateMultiTLD(name, PremiumTLDs)...)
	}
	return domains
}
