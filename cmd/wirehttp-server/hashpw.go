package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/wirehttp-go/internal/core/domain"
)

func hashpwCommand() *cli.Command {
	return &cli.Command{
		Name:      "hashpw",
		Usage:     "Hash a password with bcrypt, for seeding users out of band",
		ArgsUsage: "<password>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt work factor",
				Value: bcrypt.DefaultCost,
			},
		},
		Action: hashpw,
	}
}

func hashpw(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the password")
	}
	password := c.Args().First()
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.Int("cost"))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(hash))
	return nil
}
