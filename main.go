package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tiendaweb/tienda/config"
	"github.com/tiendaweb/tienda/database"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web"
	"github.com/tiendaweb/tienda/web/service"
)

func initLogger() {
	level, err := logger.LevelFromConfig(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogger()
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("Shutting down:", sig)
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func openDB() bool {
	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		fmt.Println(err)
		return false
	}
	return true
}

func migrateDb() {
	fmt.Println("Start migrating database...")
	if !openDB() {
		os.Exit(1)
	}
	defer database.CloseDB()
	fmt.Println("Migration done!")
}

func showSetting() {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	fmt.Println("current settings as follows:")
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("database:", config.GetDatabaseConfig().Type)
	fmt.Println("session store:", config.GetSessionStore())
	fmt.Println("image store:", config.GetImageStore())

	userService := service.UserService{}
	admins, err := userService.ListAdmins()
	if err != nil {
		fmt.Println("get admin users failed, error info:", err)
		return
	}
	for _, admin := range admins {
		fmt.Println("admin:", admin.Username)
	}
	if userService.HasDefaultAdmin() {
		fmt.Println("warning: the default admin/admin account is still active")
	}
}

func updateAdmin(username string, password string) {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	if err := userService.UpsertAdmin(username, password); err != nil {
		fmt.Println("set admin failed:", err)
		return
	}
	fmt.Println("set admin success")
}

func main() {
	config.LoadEnvFile()

	rootCmd := &cobra.Command{
		Use:     config.GetName(),
		Version: config.GetVersion(),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Show or change settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin account or reset its password",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			updateAdmin(username, password)
		},
	}
	adminCmd.Flags().String("username", "admin", "admin username")
	adminCmd.Flags().String("password", "", "new password")
	_ = adminCmd.MarkFlagRequired("password")

	settingCmd.AddCommand(showCmd, adminCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
