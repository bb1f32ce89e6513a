// Package mailer sends the product's notification emails over SMTP.
// Delivery is best-effort: a missing mail config or a send failure is
// logged, never surfaced to the request that triggered it.
package mailer

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
)

func send(to, subject, htmlBody string) {
	if configs.MailUsername == "" || configs.MailPassword == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", configs.MailUsername)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(configs.MailServer, configs.MailPort, configs.MailUsername, configs.MailPassword)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("[MAIL ERROR] to=%s subject=%q: %v", to, subject, err)
	}
}

// NotifyNewRegistration tells the super admin a registration is waiting.
// Fire-and-forget; call in a goroutine from the request path.
func NotifyNewRegistration(fullName, email, phone, gender string, age int, country, referral string) {
	admin := configs.SuperAdminEmail
	if admin == "" {
		return
	}
	if referral == "" {
		referral = "-"
	}
	html := fmt.Sprintf(`
	<div dir="rtl" style="font-family: Arial, sans-serif;">
		<h2>طلب تسجيل جديد</h2>
		<p><strong>الاسم:</strong> %s</p>
		<p><strong>البريد الإلكتروني:</strong> %s</p>
		<p><strong>الهاتف:</strong> %s</p>
		<p><strong>الجنس:</strong> %s</p>
		<p><strong>العمر:</strong> %d</p>
		<p><strong>الدولة:</strong> %s</p>
		<p><strong>مصدر المعرفة:</strong> %s</p>
		<hr>
		<p>يرجى مراجعة الطلب من لوحة التحكم.</p>
	</div>`, fullName, email, phone, gender, age, country, referral)

	send(admin, "طلب تسجيل جديد في البرنامج الرمضاني", html)
}

// SendPasswordReset mails the 6-digit reset code.
func SendPasswordReset(to, code string) {
	html := fmt.Sprintf(`
	<div dir="rtl" style="font-family: Arial, sans-serif;">
		<h2>إعادة تعيين كلمة المرور</h2>
		<p>لقد طلبت إعادة تعيين كلمة المرور. استخدم الرمز التالي:</p>
		<h3 style="background: #f0f0f0; padding: 10px; text-align: center;">%s</h3>
		<p>إذا لم تطلب ذلك، يرجى تجاهل هذا البريد.</p>
	</div>`, code)

	send(to, "إعادة تعيين كلمة المرور", html)
}
