package notify

import (
	"fmt"
	"time"
)

// displayLayout renders timestamps the way users see them in
// notifications: "Monday, March 10, 2025 at 08:30 PM".
const displayLayout = "Monday, January 2, 2006 at 03:04 PM"

// DefaultDisplayLocation is the fixed UTC+5:30 offset used when no
// display timezone is configured.
var DefaultDisplayLocation = time.FixedZone("IST", 5*3600+30*60)

// FormatDisplayTime renders a timestamp in the display timezone.
func FormatDisplayTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = DefaultDisplayLocation
	}
	return t.In(loc).Format(displayLayout)
}

// RenderedEmail is a fully rendered email notification.
type RenderedEmail struct {
	Subject string
	HTML    string
	Plain   string
}

// ConfirmationEmail renders the email sent immediately after scheduling.
func ConfirmationEmail(subject string, at time.Time, loc *time.Location) RenderedEmail {
	when := FormatDisplayTime(at, loc)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #6366f1;">✅ Appointment Confirmed</h2>
<p>Your appointment has been successfully scheduled!</p>
<div style="background: #f1f5f9; padding: 20px; border-radius: 10px; margin: 20px 0;">
<h3 style="margin-top: 0; color: #334155;">Appointment Details</h3>
<p><strong>Subject:</strong> %s</p>
<p><strong>Date &amp; Time:</strong> %s</p>
</div>
<p>You will receive a reminder notification at the scheduled time.</p>
<p style="color: #64748b; font-size: 14px;">- Your Appointment Bot</p>
</div>`, subject, when)
	plain := fmt.Sprintf("Your appointment has been scheduled.\n\nSubject: %s\nDate & Time: %s\n\nYou will receive a reminder notification at the scheduled time.\n\n- Your Appointment Bot", subject, when)
	return RenderedEmail{
		Subject: fmt.Sprintf("Appointment Confirmed: %s", subject),
		HTML:    html,
		Plain:   plain,
	}
}

// ConfirmationSMS renders the SMS sent immediately after scheduling.
func ConfirmationSMS(subject string, at time.Time, loc *time.Location) string {
	return fmt.Sprintf("✅ Appointment confirmed!\n\n\"%s\"\n%s\n\nYou'll receive a reminder at the scheduled time.",
		subject, FormatDisplayTime(at, loc))
}

// ReminderEmail renders the email sent at the appointment time.
func ReminderEmail(subject string, at time.Time, loc *time.Location) RenderedEmail {
	when := FormatDisplayTime(at, loc)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #ef4444;">⏰ Appointment Reminder</h2>
<p>This is your scheduled appointment reminder!</p>
<div style="background: #fef2f2; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid #ef4444;">
<h3 style="margin-top: 0; color: #991b1b;">Time for your appointment</h3>
<p><strong>Subject:</strong> %s</p>
<p><strong>Scheduled Time:</strong> %s</p>
</div>
<p style="color: #64748b; font-size: 14px;">- Your Appointment Bot</p>
</div>`, subject, when)
	plain := fmt.Sprintf("Time for your appointment!\n\nSubject: %s\nScheduled Time: %s\n\n- Your Appointment Bot", subject, when)
	return RenderedEmail{
		Subject: fmt.Sprintf("⏰ Reminder: %s", subject),
		HTML:    html,
		Plain:   plain,
	}
}

// ReminderSMS renders the SMS sent at the appointment time.
func ReminderSMS(subject string, at time.Time, loc *time.Location) string {
	return fmt.Sprintf("⏰ APPOINTMENT REMINDER\n\n\"%s\"\n\nScheduled for: %s\n\nTime to get ready!",
		subject, FormatDisplayTime(at, loc))
}

// FollowUpEmail renders the email sent two minutes after the
// appointment time, asking whether the user attended.
func FollowUpEmail(subject string, at time.Time, loc *time.Location) RenderedEmail {
	when := FormatDisplayTime(at, loc)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #dc2626;">⚠️ Appointment Follow-up</h2>
<p>This is a follow-up reminder for your appointment that was scheduled 2 minutes ago.</p>
<div style="background: #fee2e2; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid #dc2626;">
<h3 style="margin-top: 0; color: #991b1b;">Were you able to attend?</h3>
<p><strong>Subject:</strong> %s</p>
<p><strong>Scheduled Time:</strong> %s</p>
<p style="margin-top: 15px; font-size: 14px;">If you missed this appointment, please reschedule at your earliest convenience.</p>
</div>
<p style="color: #64748b; font-size: 14px;">- Your Appointment Bot</p>
</div>`, subject, when)
	plain := fmt.Sprintf("Were you able to attend?\n\nSubject: %s\nScheduled Time: %s\n\nIf you missed this appointment, please reschedule at your earliest convenience.\n\n- Your Appointment Bot", subject, when)
	return RenderedEmail{
		Subject: fmt.Sprintf("⚠️ Follow-up: %s", subject),
		HTML:    html,
		Plain:   plain,
	}
}

// FollowUpSMS renders the follow-up SMS.
func FollowUpSMS(subject string, at time.Time, loc *time.Location) string {
	return fmt.Sprintf("⚠️ FOLLOW-UP REMINDER\n\n\"%s\" was scheduled for %s.\n\nDid you attend? If you missed it, please reschedule.",
		subject, FormatDisplayTime(at, loc))
}
