package cli

import (
	"context"
	"log"

	"github.com/phonesaver/phonesaver/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out, "Enter password: ")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %v", err)
		return err
	}

	printlnFn("Registered. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out, "Enter password: ")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %v", err)
		return err
	}

	a.email = email
	printlnFn("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.email = ""
	printlnFn("Logged out")
	return nil
}
