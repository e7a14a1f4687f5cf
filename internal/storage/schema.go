package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"uiforge/pkg/models"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS localizations (
		id TEXT PRIMARY KEY,
		key TEXT UNIQUE NOT NULL,
		en TEXT DEFAULT '',
		es TEXT DEFAULT '',
		fr TEXT DEFAULT '',
		de TEXT DEFAULT '',
		ja TEXT DEFAULT '',
		zh TEXT DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS components (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		description TEXT DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

var seedEntries = []models.LocalizationEntry{
	{
		ID: "1", Key: "welcome.title",
		EN: "Welcome to our app", ES: "Bienvenido a nuestra aplicación", FR: "Bienvenue dans notre application",
		DE: "Willkommen in unserer App", JA: "私たちのアプリへようこそ", ZH: "欢迎使用我们的应用",
	},
	{
		ID: "2", Key: "button.submit",
		EN: "Submit", ES: "Enviar", FR: "Soumettre",
		DE: "Absenden", JA: "送信", ZH: "提交",
	},
	{
		ID: "3", Key: "error.validation",
		EN: "Please check your input", ES: "Por favor verifica tu entrada", FR: "Veuillez vérifier votre saisie",
		DE: "Bitte überprüfen Sie Ihre Eingabe", JA: "入力内容を確認してください", ZH: "请检查您的输入",
	},
	{
		ID: "4", Key: "navigation.home",
		EN: "Home", ES: "Inicio", FR: "Accueil",
		DE: "Startseite", JA: "ホーム", ZH: "首页",
	},
	{
		ID: "5", Key: "form.email",
		EN: "Email Address", ES: "Dirección de correo", FR: "Adresse e-mail",
		DE: "E-Mail-Adresse", JA: "メールアドレス", ZH: "电子邮件地址",
	},
}

func createSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func seed(ctx context.Context, db *sql.DB, b sq.StatementBuilderType, now time.Time) error {
	q := b.Insert("localizations").Columns(localizationColumns...)
	for _, e := range seedEntries {
		q = q.Values(localizationValues(e, now)...)
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build seed: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("seed localizations: %w", err)
	}
	return nil
}

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}
