// Package registry holds the in-memory customer registry.
package registry

import (
	"sync"

	"github.com/campuskit/registrar/internal/metrics"
	"github.com/campuskit/registrar/internal/models"
	"github.com/campuskit/registrar/pkg/logger"
)

// OrganizationName is the fixed name reported by every CustomerManager.
const OrganizationName = "Software Engineering"

// CustomerManager is an in-memory registry of customers keyed by ID.
// The first customer stored under an ID wins; later inserts with the same
// ID are ignored without error.
type CustomerManager struct {
	mu        sync.RWMutex
	customers map[string]models.Customer
	log       *logger.Logger
}

// NewCustomerManager creates an empty registry.
func NewCustomerManager(log *logger.Logger) *CustomerManager {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerManager{
		customers: make(map[string]models.Customer),
		log:       log.WithComponent("customer_manager"),
	}
}

// AddCustomer builds a customer from the given fields and stores it unless
// the ID is already registered. The newly built customer is returned in
// both cases, so on a duplicate the result differs from the stored entry.
func (m *CustomerManager) AddCustomer(id, firstName, lastName, phoneNumber string) *models.Customer {
	customer, _ := m.Register(id, firstName, lastName, phoneNumber)
	return customer
}

// Register behaves like AddCustomer and also reports whether the customer
// was stored.
func (m *CustomerManager) Register(id, firstName, lastName, phoneNumber string) (*models.Customer, bool) {
	customer := models.NewCustomer(id, firstName, lastName, phoneNumber)

	m.mu.Lock()
	_, exists := m.customers[id]
	if !exists {
		m.customers[id] = *customer
	}
	size := len(m.customers)
	m.mu.Unlock()

	metrics.RecordCustomerRegistered(!exists)
	if exists {
		m.log.Info("customer already registered, ignoring", "customer_id", id)
		return customer, false
	}

	m.log.Debug("customer registered", "customer_id", id, "registry_size", size)
	return customer, true
}

// GetAllCustomers returns a snapshot of the registered customers.
// Order is unspecified.
func (m *CustomerManager) GetAllCustomers() []models.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customers := make([]models.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		customers = append(customers, c)
	}
	return customers
}

// Get returns the stored customer for id.
func (m *CustomerManager) Get(id string) (models.Customer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.customers[id]
	return c, ok
}

// Len returns the number of registered customers.
func (m *CustomerManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.customers)
}

// OrganizationName returns the organization the registry belongs to.
func (m *CustomerManager) OrganizationName() string {
	return OrganizationName
}
