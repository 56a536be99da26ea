package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"marketplace/internal/adapters/out/chargeconfig"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/payment"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/locationrepo"
	"marketplace/internal/adapters/out/redislock"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Handlers are cheap
// value types created per call; the adapters behind them are shared.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	publisher  ports.EventPublisher
	locker     ports.CartLocker
	catalog    ports.MenuCatalog
	locations  ports.LocationResolver
	charges    ports.ChargeConfigProvider
	gateway    ports.PaymentGateway
	dispatcher services.AssignmentDispatcher

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	producer, err := kafka.NewSyncProducer([]string{config.KafkaHost})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("kafka producer: %w", err)
	}

	locker, err := redislock.NewRedisCartLocker(redis.NewClient(&redis.Options{Addr: config.RedisHost}))
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("cart locker: %w", err)
	}

	gateway, err := payment.NewStubPaymentGateway(logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("payment gateway: %w", err)
	}

	charges, err := chargeconfig.NewStaticChargeConfigProvider(pricing.DefaultChargeConfig())
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("charge config: %w", err)
	}

	radiusKm := 0.0
	if config.DispatchRadiusKm != "" {
		if radiusKm, err = strconv.ParseFloat(config.DispatchRadiusKm, 64); err != nil {
			return CompositionRoot{}, fmt.Errorf("dispatch radius: %w", err)
		}
	}
	dispatcher, err := services.NewAssignmentDispatcher(radiusKm)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("assignment dispatcher: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewSaramaEventPublisher(producer),
		locker:     locker,
		catalog:    catalogrepo.NewGormMenuCatalog(gormDB),
		locations:  locationrepo.NewGormLocationResolver(gormDB),
		charges:    charges,
		gateway:    gateway,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartItemCommandHandler(f, c.locker, c.catalog, c.locations, c.charges)
}

func (c *CompositionRoot) CreateChangeItemQuantityCommandHandler() commands.ChangeItemQuantityCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeItemQuantityCommandHandler(f, c.locker, c.locations, c.charges)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveCartItemCommandHandler(f, c.locker, c.locations, c.charges)
}

func (c *CompositionRoot) CreateApplyCouponCommandHandler() commands.ApplyCouponCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyCouponCommandHandler(f, c.locker, c.locations, c.charges)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.locker, c.locations, c.charges, c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDispatchAssignmentsCommandHandler() commands.DispatchAssignmentsCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchAssignmentsCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptAssignmentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRiderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateRiderLocationCommandHandler() commands.UpdateRiderLocationCommandHandler {
	var f commands.RiderLocationUoWFactory = FuncRiderLocationUoWFactory(func() commands.RiderLocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRiderLocationCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncRiderLocationUoWFactory func() commands.RiderLocationUoW

func (f FuncRiderLocationUoWFactory) Create() commands.RiderLocationUoW {
	return f()
}
