package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". Returns an empty Attr when all are nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records the tenant identifier under "tenant_id".
func TenantID(id int64) slog.Attr {
	return slog.Int64("tenant_id", id)
}

// CompanyID records the company identifier under "company_id".
func CompanyID(id int64) slog.Attr {
	return slog.Int64("company_id", id)
}

// TenantSlug records a subdomain label or override value under "tenant_slug".
func TenantSlug(slug string) slog.Attr {
	return slog.String("tenant_slug", slug)
}

// Username records the login identifier under "username".
// Empty names yield an empty Attr.
func Username(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("username", name)
}

// UserID records the principal identifier under "user_id".
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

// Role records a role name under "role".
func Role(role string) slog.Attr {
	return slog.String("role", role)
}

// RequestID records the request identifier under "request_id".
// Empty ids yield an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Host records the request host under "host".
func Host(host string) slog.Attr {
	return slog.String("host", host)
}

// Path records the request path under "path".
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Duration records a duration under "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
