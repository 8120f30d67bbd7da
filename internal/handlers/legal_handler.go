package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	appName string
}

func NewLegalHandler(appName string) *LegalHandler {
	return &LegalHandler{appName: appName}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.appName + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<h2>Information We Keep</h2>
<p>When you sign in with Google we keep your account id, name, email address and profile picture. Everything else is what you enter: contacts, important dates, surveys and their responses.</p>
<h2>Where It Lives</h2>
<p>Your data is stored on the device or server running ` + h.appName + `, under keys tied to your account id. Signing out keeps your data for your next sign-in; another account on the same installation cannot see it.</p>
<h2>Notifications</h2>
<p>Reminder notifications are handed to the host you configure and contain only the date title, contact name and when it occurs.</p>
<h2>Export</h2>
<p>You can download everything as JSON or as a spreadsheet at any time.</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.appName + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<h2>Acceptance</h2>
<p>By using ` + h.appName + `, you agree to these terms.</p>
<h2>Your Data</h2>
<p>You are responsible for the information you record about other people and for keeping your exports safe.</p>
<h2>No Warranty</h2>
<p>Reminders are best effort. Do not rely on ` + h.appName + ` as your only record of important dates.</p>
</body></html>`)
}
