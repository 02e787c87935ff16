package handler

import (
	"net/http"
	"sync"

	config "wfm-api/configs"
	"wfm-api/pkg/bootstrap"
	"wfm-api/pkg/handlers"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	app     *gin.Engine
	initErr error
	once    sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
func setupApp() (*gin.Engine, error) {
	once.Do(func() {
		// 環境変数はVercelの設定から読み込まれるため、ここではgodotenvを呼び出しません。
		cfg := config.LoadConfig()
		bootstrap.SetupLogging(cfg.LogLevel, "production")
		gin.SetMode(gin.ReleaseMode)

		deps, err := bootstrap.NewDependencies(cfg)
		if err != nil {
			initErr = err
			return
		}
		app = handlers.NewRouter(deps)
		logrus.Info("serverless application initialized")
	})
	return app, initErr
}

// Handler はVercelのサーバーレス関数のエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	engine, err := setupApp()
	if err != nil {
		logrus.WithError(err).Error("failed to initialize application")
		http.Error(w, "service initialization failed", http.StatusInternalServerError)
		return
	}
	engine.ServeHTTP(w, r)
}
