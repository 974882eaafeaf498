// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/infra/config"
	"github.com/perchhq/perch/internal/infra/discord"
	"github.com/perchhq/perch/internal/infra/logging"
	"github.com/perchhq/perch/internal/infra/sqlstore"
	"github.com/perchhq/perch/internal/scheduler"
	"github.com/perchhq/perch/internal/usecase"
	"github.com/perchhq/perch/internal/worker"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks    domain.TaskRepository
	Activity domain.ActivityLog
	Registry domain.AgentRegistry
	Notifier domain.Notifier
	Clock    domain.Clock

	Logger *slog.Logger
	DB     *sql.DB
	Config *config.Config
	Roster []domain.AgentDef
}

// New creates a Container from the config file at configPath.
func New(configPath string) (*Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	roster, err := config.LoadRoster(cfg.Roster.Path)
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	db, err := sqlstore.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	var notifier domain.Notifier = discord.NopNotifier{}
	if cfg.Discord.Enabled {
		notifier = discord.NewNotifier(cfg.Discord.Token, cfg.Discord.ChannelID, cfg.Discord.APIBase)
	}

	store := sqlstore.New(db)
	return &Container{
		Tasks:    store,
		Activity: store,
		Registry: sqlstore.NewAgentStore(db),
		Notifier: notifier,
		Clock:    domain.RealClock{},
		Logger:   logger,
		DB:       db,
		Config:   cfg,
		Roster:   roster,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg *config.Config, roster []domain.AgentDef, tasks domain.TaskRepository, activity domain.ActivityLog, registry domain.AgentRegistry, notifier domain.Notifier, clock domain.Clock, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		Tasks:    tasks,
		Activity: activity,
		Registry: registry,
		Notifier: notifier,
		Clock:    clock,
		Logger:   logger,
		Config:   cfg,
		Roster:   roster,
	}
}

// Close releases held connections.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// UseCase factory methods

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Tasks, c.Activity, c.Roster, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// UpdateStatusUseCase returns a new UpdateStatus use case.
func (c *Container) UpdateStatusUseCase() *usecase.UpdateStatus {
	return usecase.NewUpdateStatus(c.Tasks, c.Activity, c.Clock, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Activity, c.Clock, c.Logger)
}

// ReassignTaskUseCase returns a new ReassignTask use case.
func (c *Container) ReassignTaskUseCase() *usecase.ReassignTask {
	return usecase.NewReassignTask(c.Tasks, c.Activity, c.Roster, c.Clock, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Logger)
}

// PruneTasksUseCase returns a new PruneTasks use case.
func (c *Container) PruneTasksUseCase() *usecase.PruneTasks {
	return usecase.NewPruneTasks(c.Tasks, c.Logger)
}

// RegisterAgentsUseCase returns a new RegisterAgents use case.
func (c *Container) RegisterAgentsUseCase() *usecase.RegisterAgents {
	return usecase.NewRegisterAgents(c.Registry, c.Roster, c.Logger)
}

// ListAgentsUseCase returns a new ListAgents use case.
func (c *Container) ListAgentsUseCase() *usecase.ListAgents {
	return usecase.NewListAgents(c.Registry)
}

// ListActivityUseCase returns a new ListActivity use case.
func (c *Container) ListActivityUseCase() *usecase.ListActivity {
	return usecase.NewListActivity(c.Activity)
}

// Worker builds the activation loop for one roster agent. The inbox channel
// has a single consumer, so only the coordinator drains it.
func (c *Container) Worker(def domain.AgentDef) *worker.Worker {
	var inbox domain.Inbox
	var executor worker.Executor
	if def.IsCoordinator {
		if d := c.Config.Discord; d.Enabled && d.InboxChannelID != "" {
			inbox = discord.NewChannelInbox(d.Token, d.InboxChannelID, d.BotUserID, d.APIBase)
		}
		reassign := c.ReassignTaskUseCase()
		executor = &worker.CoordinatorExecutor{
			Router:    domain.NewKeywordRouter(c.Roster),
			ActorName: def.Name,
			AutoRoute: true,
			Mover: worker.MoverFunc(func(ctx context.Context, taskID, newOwner, actorName string) error {
				return reassign.Execute(ctx, usecase.ReassignTaskInput{
					TaskID:    taskID,
					NewOwner:  newOwner,
					ActorName: actorName,
				})
			}),
		}
	} else {
		executor = &worker.CannedExecutor{Specialization: def.Specialization}
	}

	return worker.New(def, worker.Deps{
		Tasks:      c.Tasks,
		Registry:   c.Registry,
		CreateTask: c.CreateTaskUseCase(),
		Status:     c.UpdateStatusUseCase(),
		Complete:   c.CompleteTaskUseCase(),
		Executor:   executor,
		Notifier:   c.Notifier,
		Inbox:      inbox,
		Clock:      c.Clock,
		Logger:     c.Logger,
	})
}

// Scheduler builds the fleet scheduler over the whole roster. The coordinator
// runs on its tighter configured cadence.
func (c *Container) Scheduler() *scheduler.Scheduler {
	sched := c.Config.Scheduler

	overrides := make(map[string]scheduler.Policy)
	runners := make([]scheduler.Runner, 0, len(c.Roster))
	for _, def := range c.Roster {
		if def.IsCoordinator {
			overrides[def.Name] = scheduler.FixedInterval{Interval: sched.CoordinatorInterval}
		}
		runners = append(runners, c.Worker(def))
	}

	policy := scheduler.PerAgent{
		Overrides: overrides,
		Default:   scheduler.NewStaggeredInterval(domain.RosterNames(c.Roster), sched.Interval, sched.Stagger),
	}
	return scheduler.New(policy, runners, c.Notifier, c.Clock, c.Logger)
}
