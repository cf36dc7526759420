package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/sitegen/internal/dto"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	formIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
	idnaProfile   = idna.Lookup
)

const (
	defaultPhoneRegion = "US"
	maxFieldLength     = 5000
	maxFields          = 50
	// honeypotField is hidden from humans; bots fill it in.
	honeypotField = "website"
)

var (
	emailFields = []string{"email", "your-email", "email_address"}
	phoneFields = []string{"phone", "tel", "your-phone", "phone_number"}
)

// ErrSpam marks a submission that tripped the honeypot.
var ErrSpam = errors.New("submission rejected as spam")

// ValidationError indicates that a lead submission is malformed.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// CleanedLead is a submission that passed validation.
type CleanedLead struct {
	FormID   string
	FormData map[string]any
	Email    *string
	Phone    *string
}

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// LeadValidator normalises lead form input.
type LeadValidator struct {
	DefaultRegion string
	dnsResolver   DNSResolver
}

// LeadValidatorOption configures optional dependencies.
type LeadValidatorOption func(*LeadValidator)

// WithDNSResolver enables MX checks on email domains.
func WithDNSResolver(resolver DNSResolver) LeadValidatorOption {
	return func(v *LeadValidator) {
		v.dnsResolver = resolver
	}
}

// SystemDNSResolver resolves through the host resolver.
func SystemDNSResolver() DNSResolver {
	return systemDNSResolver{}
}

// NewLeadValidator builds a validator for the given phone region.
func NewLeadValidator(defaultRegion string, opts ...LeadValidatorOption) *LeadValidator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	v := &LeadValidator{DefaultRegion: region}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks a submission and returns its normalised form. Email and
// phone fields are rewritten in place so the CMS receives the clean values.
func (v *LeadValidator) Validate(ctx context.Context, req dto.SubmitLeadRequest) (CleanedLead, error) {
	formID := strings.ToLower(strings.TrimSpace(req.FormID))
	if formID == "" {
		return CleanedLead{}, ValidationError{Field: "formId", Message: "is required"}
	}
	if !formIDPattern.MatchString(formID) {
		return CleanedLead{}, ValidationError{Field: "formId", Message: "is invalid"}
	}
	if len(req.FormData) == 0 {
		return CleanedLead{}, ValidationError{Field: "formData", Message: "is required"}
	}
	if len(req.FormData) > maxFields {
		return CleanedLead{}, ValidationError{Field: "formData", Message: fmt.Sprintf("has more than %d fields", maxFields)}
	}
	if trap, ok := req.FormData[honeypotField].(string); ok && strings.TrimSpace(trap) != "" {
		return CleanedLead{}, ErrSpam
	}

	data := make(map[string]any, len(req.FormData))
	for _, key := range sortedKeys(req.FormData) {
		value := req.FormData[key]
		if key == honeypotField {
			continue
		}
		if s, ok := value.(string); ok {
			s = strings.TrimSpace(s)
			if len(s) > maxFieldLength {
				return CleanedLead{}, ValidationError{Field: key, Message: "is too long"}
			}
			value = s
		}
		data[key] = value
	}

	out := CleanedLead{FormID: formID, FormData: data}

	if key, raw, ok := firstString(data, emailFields); ok {
		email, err := v.cleanEmail(ctx, raw)
		if err != nil {
			return CleanedLead{}, ValidationError{Field: key, Message: err.Error()}
		}
		data[key] = email
		out.Email = &email
	}
	if key, raw, ok := firstString(data, phoneFields); ok {
		phone := normalizePhone(raw, v.DefaultRegion)
		if phone == "" {
			return CleanedLead{}, ValidationError{Field: key, Message: "is not a valid phone number"}
		}
		data[key] = phone
		out.Phone = &phone
	}
	if out.Email == nil && out.Phone == nil {
		return CleanedLead{}, ValidationError{Message: "an email or phone number is required"}
	}
	return out, nil
}

func (v *LeadValidator) cleanEmail(ctx context.Context, raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", errors.New("is not a valid email address")
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !isDomainValid(domain) {
		return "", errors.New("has an invalid domain")
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return "", errors.New("has an invalid domain")
	}
	if v.dnsResolver != nil && !v.hasMXRecord(ctx, asciiDomain) {
		return "", errors.New("domain does not accept mail")
	}
	return email, nil
}

func (v *LeadValidator) hasMXRecord(ctx context.Context, domain string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	records, err := v.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

// firstString returns the first non-empty string among keys.
func firstString(data map[string]any, keys []string) (string, string, bool) {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return key, s, true
		}
	}
	return "", "", false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

type systemDNSResolver struct{}

func (systemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}
