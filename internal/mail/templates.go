package mail

import (
	"bytes"
	"html/template"
	"time"
)

const (
	KindVerification  = "verification"
	KindPasswordReset = "password_reset"
	KindTrialReminder = "trial_reminder"
)

var (
	verificationTmpl = template.Must(template.New("verification").Parse(
		`<h1>Hoş geldiniz, {{.Name}}!</h1>` +
			`<p>The Room hesabınızı doğrulamak için lütfen aşağıdaki bağlantıya tıklayın:</p>` +
			`<p><a href="{{.Link}}">Hesabımı Doğrula</a></p>` +
			`<p>Bu bağlantı 24 saat geçerlidir.</p>`))

	resetTmpl = template.Must(template.New("reset").Parse(
		`<p>Şifrenizi sıfırlamak için aşağıdaki bağlantıya tıklayın:</p>` +
			`<p><a href="{{.Link}}">Şifremi Sıfırla</a></p>` +
			`<p>Bu bağlantı 1 saat geçerlidir. Bu isteği siz yapmadıysanız bu e-postayı yok sayabilirsiniz.</p>`))

	trialTmpl = template.Must(template.New("trial").Parse(
		`<h1>Merhaba {{.Name}},</h1>` +
			`<p>The Room deneme süreniz <strong>{{.EndsAt}}</strong> tarihinde sona erecek.</p>` +
			`<p>Sitenizin yayında kalması için paketinizi yükseltebilirsiniz.</p>` +
			`<p><a href="{{.Link}}">Paketimi Yükselt</a></p>`))
)

func VerificationMessage(to, name, link string) (Message, error) {
	body, err := render(verificationTmpl, map[string]string{"Name": name, "Link": link})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindVerification, To: to, Subject: "The Room | Hesabınızı Doğrulayın", HTML: body}, nil
}

func PasswordResetMessage(to, link string) (Message, error) {
	body, err := render(resetTmpl, map[string]string{"Link": link})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindPasswordReset, To: to, Subject: "The Room | Şifre Sıfırlama", HTML: body}, nil
}

func TrialReminderMessage(to, name string, endsAt time.Time, link string) (Message, error) {
	body, err := render(trialTmpl, map[string]string{
		"Name":   name,
		"EndsAt": endsAt.Format("02.01.2006"),
		"Link":   link,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindTrialReminder, To: to, Subject: "The Room | Deneme Süreniz Dolmak Üzere!", HTML: body}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
