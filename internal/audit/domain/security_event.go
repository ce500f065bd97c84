package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CEF header constants.
const (
	cefVendor   = "allisson"
	cefProduct  = "credentials"
	cefVersion  = "CEF:0"
	cefSeverity = "0"
)

// Result values written to the cs3 extension field.
const (
	ResultSuccess     = "success"
	ResultClientError = "clientError"
	ResultServerError = "serverError"
)

// SecurityEventAuditRecord is the external, always-emitted view of a request audit record.
type SecurityEventAuditRecord struct {
	Actor           string
	AuthMechanism   string
	Method          string
	Path            string
	QueryParameters string
	StatusCode      int
	ClientIP        string
	Host            string
	Timestamp       time.Time
}

// NewSecurityEventAuditRecord derives a security event from record. An anonymous request
// carries an empty actor.
func NewSecurityEventAuditRecord(record *RequestAuditRecord, actor string) *SecurityEventAuditRecord {
	return &SecurityEventAuditRecord{
		Actor:           actor,
		AuthMechanism:   record.AuthMechanism,
		Method:          record.Method,
		Path:            record.Path,
		QueryParameters: record.QueryParameters,
		StatusCode:      record.StatusCode,
		ClientIP:        record.ClientIP,
		Host:            record.Host,
		Timestamp:       record.CreatedAt,
	}
}

// PathWithQuery returns the request path followed by its raw query, if any.
func (e *SecurityEventAuditRecord) PathWithQuery() string {
	if e.QueryParameters == "" {
		return e.Path
	}
	return e.Path + "?" + e.QueryParameters
}

// Result classifies the status code.
func (e *SecurityEventAuditRecord) Result() string {
	switch {
	case e.StatusCode >= 500:
		return ResultServerError
	case e.StatusCode >= 400:
		return ResultClientError
	default:
		return ResultSuccess
	}
}

// CEF renders the event as a single Common Event Format line for productVersion.
func (e *SecurityEventAuditRecord) CEF(productVersion string) string {
	signature := escapeHeader(e.Method + " " + e.PathWithQuery())
	header := strings.Join([]string{
		cefVersion,
		cefVendor,
		cefProduct,
		escapeHeader(productVersion),
		signature,
		signature,
		cefSeverity,
	}, "|")

	extensions := []string{
		"rt=" + strconv.FormatInt(e.Timestamp.UnixMilli(), 10),
		"suser=" + escapeExtension(e.Actor),
		"suid=" + escapeExtension(e.Actor),
		"cs1Label=userAuthenticationMechanism",
		"cs1=" + escapeExtension(e.AuthMechanism),
		"request=" + escapeExtension(e.PathWithQuery()),
		"requestMethod=" + escapeExtension(e.Method),
		"cs3Label=result",
		"cs3=" + e.Result(),
		"cs4Label=httpStatusCode",
		fmt.Sprintf("cs4=%d", e.StatusCode),
		"src=" + escapeExtension(e.ClientIP),
		"dst=" + escapeExtension(e.Host),
	}

	return header + "|" + strings.Join(extensions, " ")
}

var (
	headerEscaper    = strings.NewReplacer(`\`, `\\`, `|`, `\|`, "\n", " ", "\r", " ")
	extensionEscaper = strings.NewReplacer(`\`, `\\`, `=`, `\=`, "\n", `\n`, "\r", `\r`)
)

func escapeHeader(s string) string {
	return headerEscaper.Replace(s)
}

func escapeExtension(s string) string {
	return extensionEscaper.Replace(s)
}
