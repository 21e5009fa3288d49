package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
	"github.com/Pekotaker/student-management-be/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sqlx.DB
	usrRepo user.Repository
	admRepo user.AdminRepository
	schRepo school.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                        - apply pending database migrations")
	fmt.Println("  addadmin -email EMAIL [-name NAME] - create an admin account (password prompted)")
	fmt.Println("  seed                           - populate the database with sample records")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")
	addAdminName := addAdminCmd.String("name", "Admin", "The admin's display name.")

	switch args[1] {
	case "migrate":
		return database.Migrate(cli.db)
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminEmail == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminEmail, *addAdminName, string(pwd))
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) addAdmin(email, name, pwd string) error {
	adm := user.Admin{
		Email:     core.CleanString(email, true /* lower */),
		Name:      core.CleanString(name),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := cli.admRepo.GetAdminByEmail(context.Background(), adm.Email); err == nil {
		return user.ErrEmailExists
	} else if err != user.ErrNotFound {
		return err
	}
	if err := adm.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.admRepo.CreateAdmin(context.Background(), adm)
	return err
}
