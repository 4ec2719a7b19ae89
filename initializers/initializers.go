package initializers

import (
	"context"

	"noc-portal-backend/config"
	"noc-portal-backend/fiberlog"
	authhandler "noc-portal-backend/lib/auth"
	companyprovider "noc-portal-backend/lib/dicts/company"
	xlsexport "noc-portal-backend/lib/export/xls"
	filestorage "noc-portal-backend/lib/file-storage"
	nocnotify "noc-portal-backend/lib/noc-notify"
	nocreqhandler "noc-portal-backend/lib/noc-req"
	"noc-portal-backend/lib/rbac"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	filestorage.NewHandler()
	authhandler.NewHandler()
	companyprovider.NewHandler()
	xlsexport.NewHandler()
	nocnotify.NewHandler()
	nocreqhandler.NewHandler(nocnotify.Instance)
	rbac.NewHandler()
}
