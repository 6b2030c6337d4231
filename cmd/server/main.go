package main

import (
	announcementhandler "eliteclub/internal/announcements/handler"
	announcementrepo "eliteclub/internal/announcements/repository"
	announcementservice "eliteclub/internal/announcements/service"
	bookinghandler "eliteclub/internal/bookings/handler"
	bookingrepo "eliteclub/internal/bookings/repository"
	bookingservice "eliteclub/internal/bookings/service"
	bookingvalidator "eliteclub/internal/bookings/validator"
	couponhandler "eliteclub/internal/coupons/handler"
	couponrepo "eliteclub/internal/coupons/repository"
	couponservice "eliteclub/internal/coupons/service"
	courthandler "eliteclub/internal/courts/handler"
	courtrepo "eliteclub/internal/courts/repository"
	courtservice "eliteclub/internal/courts/service"
	memberhandler "eliteclub/internal/members/handler"
	memberservice "eliteclub/internal/members/service"
	paymenthandler "eliteclub/internal/payments/handler"
	paymentrepo "eliteclub/internal/payments/repository"
	paymentservice "eliteclub/internal/payments/service"
	userhandler "eliteclub/internal/users/handler"
	userrepo "eliteclub/internal/users/repository"
	userservice "eliteclub/internal/users/service"
	"eliteclub/pkg/app"
	"eliteclub/pkg/config"
	"eliteclub/pkg/contracts"
	"eliteclub/pkg/events"
	"eliteclub/pkg/identity"
	"eliteclub/pkg/middleware"
)

const ServiceName = "eliteclub-server"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.IdentityJWTSecret == "" {
		cfg.Log.Fatal("IDENTITY_JWT_SECRET must be set")
	}
	cfg.SetMongo()

	verifier := identity.NewJWTVerifier(cfg.IdentityJWTSecret)
	provider := identity.NewAdminClient(cfg.IdentityAdminURL, cfg.IdentityAPIKey, cfg.IdentityTimeout)
	auth := middleware.NewAuthenticator(verifier, cfg.Log)

	publisher := events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName)
		if err != nil {
			cfg.Log.Fatal("Failed to set up event publisher", "error", err)
		}
	} else {
		cfg.Log.Info("No Kafka brokers configured, event publishing disabled")
	}

	bookingRepository := bookingrepo.NewMongoBookingRepository(cfg)
	userRepository := userrepo.NewMongoUserRepository(cfg)
	paymentRepository := paymentrepo.NewMongoPaymentRepository(cfg)
	couponRepository := couponrepo.NewMongoCouponRepository(cfg)
	courtRepository := courtrepo.NewMongoCourtRepository(cfg)
	announcementRepository := announcementrepo.NewMongoAnnouncementRepository(cfg)

	bookingService := bookingservice.NewBookingService(
		bookingRepository,
		userRepository,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	userService := userservice.NewUserService(userRepository, cfg)
	paymentService := paymentservice.NewPaymentService(paymentRepository, bookingRepository, publisher, cfg)
	memberService := memberservice.NewMemberService(userRepository, bookingRepository, provider, publisher, cfg)
	couponService := couponservice.NewCouponService(couponRepository, cfg)
	courtService := courtservice.NewCourtService(courtRepository, cfg)
	announcementService := announcementservice.NewAnnouncementService(announcementRepository, publisher, cfg)

	handlers := []contracts.Handler{
		bookinghandler.NewBookingHandler(bookingService, auth, cfg.Log),
		userhandler.NewUserHandler(userService, auth, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, auth, cfg.Log),
		memberhandler.NewMemberHandler(memberService, auth, cfg.Log),
		couponhandler.NewCouponHandler(couponService, auth, cfg.Log),
		courthandler.NewCourtHandler(courtService, auth, cfg.Log),
		announcementhandler.NewAnnouncementHandler(announcementService, auth, cfg.Log),
	}

	application := app.NewApplication(cfg)
	application.SetApp(publisher, handlers...)
	application.Run()
}
