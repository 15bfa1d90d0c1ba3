package log

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var base = logrus.New()

func init() {
	base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05Z07:00"})
}

// SetOutput redirects the structured log (e.g. to a file tee).
func SetOutput(w io.Writer) { base.SetOutput(w) }

func write(level logrus.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	f := logrus.Fields{"action": action}
	if c != nil {
		f["ip"] = c.IP()
		f["method"] = c.Method()
		f["path"] = c.Path()
		f["status"] = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			f["req_id"] = rid
		}
	}
	for k, v := range fields {
		f[k] = v
	}
	e := base.WithFields(f)
	if err != nil {
		e = e.WithError(err)
	}
	e.Log(level)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.InfoLevel, c, action, nil, fields)
}

// Audit records state-changing business actions (order placed, status
// updated) so the trail survives in the JSON log.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["audit"] = true
	write(logrus.InfoLevel, c, action, nil, fields)
}

// Security records denied access, validation failures and rate-limit hits.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logrus.ErrorLevel, c, action, err, fields)
}
