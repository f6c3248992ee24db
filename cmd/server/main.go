package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"caresure/internal/audit"
	directoryservice "caresure/internal/directory/service"
	directorystore "caresure/internal/directory/store"
	endorsementmetrics "caresure/internal/endorsement/metrics"
	endorsementservice "caresure/internal/endorsement/service"
	endorsementstore "caresure/internal/endorsement/store"
	episodemetrics "caresure/internal/episode/metrics"
	episodeservice "caresure/internal/episode/service"
	episodestore "caresure/internal/episode/store"
	"caresure/internal/platform/config"
	"caresure/internal/platform/database"
	"caresure/internal/platform/httpserver"
	"caresure/internal/platform/logger"
	"caresure/internal/platform/txn"
	policyservice "caresure/internal/policy/service"
	policystore "caresure/internal/policy/store"
	stakeholderservice "caresure/internal/stakeholder/service"
	stakeholderstore "caresure/internal/stakeholder/store"
	subscriptionservice "caresure/internal/subscription/service"
	subscriptionstore "caresure/internal/subscription/store"
	"caresure/internal/treasury"
	httptransport "caresure/internal/transport/http"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The ledger is in-memory; the audit trail optionally persists to
	// PostgreSQL when DATABASE_URL is set.
	var auditStore audit.Store = audit.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = audit.NewPostgres(db)
	}

	var publisherOpts []audit.PublisherOption
	if cfg.AuditBuffer > 0 {
		publisherOpts = append(publisherOpts,
			audit.WithAsyncBuffer(cfg.AuditBuffer),
			audit.WithPublisherLogger(log),
		)
	}
	auditor := audit.NewPublisher(auditStore, publisherOpts...)
	defer auditor.Close()

	tx := txn.New(txn.WithTimeout(cfg.TxTimeout))

	patients := directorystore.NewPatients()
	hospitals := directorystore.NewHospitals()
	insurers := directorystore.NewInsurers()
	catalog := directorystore.NewTreatmentCatalog()
	documents := directorystore.NewDocuments()
	policyStore := policystore.New()
	funds := treasury.NewLedger()

	stakeholders := stakeholderservice.NewService(stakeholderstore.New(), tx, auditor,
		stakeholderservice.WithLogger(log))
	directory := directoryservice.NewService(patients, hospitals, insurers, catalog, documents, stakeholders, tx, log)
	endorsements := endorsementservice.NewService(hospitals, insurers, endorsementstore.New(), tx, auditor,
		endorsementservice.WithMetrics(endorsementmetrics.New()),
		endorsementservice.WithLogger(log))
	policies := policyservice.NewService(policyStore, insurers, stakeholders, tx, auditor,
		policyservice.WithLogger(log))
	subscriptions := subscriptionservice.NewService(subscriptionstore.New(), policyStore, patients, stakeholders, tx, auditor,
		subscriptionservice.WithLogger(log))
	episodes := episodeservice.NewService(
		episodeservice.Stores{
			Appointments:  episodestore.NewAppointments(),
			Bills:         episodestore.NewBills(),
			Treatments:    episodestore.NewTreatments(),
			Claims:        episodestore.NewClaims(),
			Disbursements: episodestore.NewDisbursements(),
			Transactions:  episodestore.NewTransactions(),
		},
		episodeservice.Collaborators{
			Patients:     patients,
			Hospitals:    hospitals,
			Policies:     policyStore,
			Catalog:      catalog,
			Stakeholders: stakeholders,
			Payouts:      funds,
		},
		tx,
		auditor,
		episodeservice.WithMetrics(episodemetrics.New()),
		episodeservice.WithLogger(log),
	)

	handler := httptransport.NewHandler(httptransport.Services{
		Stakeholders:  stakeholders,
		Directory:     directory,
		Endorsements:  endorsements,
		Policies:      policies,
		Subscriptions: subscriptions,
		Episodes:      episodes,
		Treasury:      funds,
		Audit:         auditor,
	}, log)
	router := httptransport.NewRouter(handler, httptransport.AuthConfig{
		JWTSigningKey: cfg.JWTSigningKey,
		AdminKeyHash:  cfg.AdminKeyHash,
	}, log)

	api := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api server listening", "addr", cfg.Addr)
		if err := api.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("metrics server listening", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return api.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
