package models

// TaskType names the kind of implementation work a [Task] describes.
type TaskType string

const (
	TaskComponent  TaskType = "component"
	TaskService    TaskType = "service"
	TaskController TaskType = "controller"
	TaskModel      TaskType = "model"
)

// Task is one unit of implementation work derived from a design element.
type Task interface {
	Kind() TaskType
}

// ComponentTask asks the frontend to build a UI component.
type ComponentTask struct {
	Type         TaskType `json:"type"`
	Name         string   `json:"name,omitempty"`
	Requirements List     `json:"requirements"`
	Dependencies List     `json:"dependencies"`
}

// ClientServiceTask asks the frontend to build a client for one API endpoint.
type ClientServiceTask struct {
	Type      TaskType `json:"type"`
	Endpoint  string   `json:"endpoint,omitempty"`
	Method    string   `json:"method,omitempty"`
	DataModel string   `json:"data_model,omitempty"`
}

// ControllerTask asks the backend to expose one API endpoint.
type ControllerTask struct {
	Type          TaskType `json:"type"`
	Endpoint      string   `json:"endpoint,omitempty"`
	Method        string   `json:"method,omitempty"`
	RequestModel  string   `json:"request_model,omitempty"`
	ResponseModel string   `json:"response_model,omitempty"`
	Security      List     `json:"security"`
}

// ModelTask asks the backend to implement a data model.
type ModelTask struct {
	Type          TaskType `json:"type"`
	Name          string   `json:"name,omitempty"`
	Properties    List     `json:"properties"`
	Validations   List     `json:"validations"`
	Relationships List     `json:"relationships"`
}

// ServiceTask asks the backend to implement a service-layer component.
type ServiceTask struct {
	Type         TaskType `json:"type"`
	Name         string   `json:"name,omitempty"`
	Operations   List     `json:"operations"`
	Dependencies List     `json:"dependencies"`
	DataAccess   Object   `json:"data_access"`
}

func (ComponentTask) Kind() TaskType     { return TaskComponent }
func (ClientServiceTask) Kind() TaskType { return TaskService }
func (ControllerTask) Kind() TaskType    { return TaskController }
func (ModelTask) Kind() TaskType         { return TaskModel }
func (ServiceTask) Kind() TaskType       { return TaskService }

// NewComponentTask copies c into a fresh task.
func NewComponentTask(c UIComponent) ComponentTask {
	return ComponentTask{
		Type:         TaskComponent,
		Name:         c.Name,
		Requirements: c.Requirements.Clone(),
		Dependencies: c.Dependencies.Clone(),
	}
}

// NewClientServiceTask copies e into a fresh frontend service task.
func NewClientServiceTask(e EndpointSpec) ClientServiceTask {
	return ClientServiceTask{
		Type:      TaskService,
		Endpoint:  e.Path,
		Method:    e.Method,
		DataModel: e.DataModel,
	}
}

// NewControllerTask copies e into a fresh controller task.
func NewControllerTask(e EndpointSpec) ControllerTask {
	return ControllerTask{
		Type:          TaskController,
		Endpoint:      e.Path,
		Method:        e.Method,
		RequestModel:  e.RequestModel,
		ResponseModel: e.ResponseModel,
		Security:      e.Security.Clone(),
	}
}

// NewModelTask copies m into a fresh model task.
func NewModelTask(m ModelSpec) ModelTask {
	return ModelTask{
		Type:          TaskModel,
		Name:          m.Name,
		Properties:    m.Properties.Clone(),
		Validations:   m.Validations.Clone(),
		Relationships: m.Relationships.Clone(),
	}
}

// NewServiceTask copies s into a fresh backend service task.
func NewServiceTask(s ServiceSpec) ServiceTask {
	return ServiceTask{
		Type:         TaskService,
		Name:         s.Name,
		Operations:   s.Operations.Clone(),
		Dependencies: s.Dependencies.Clone(),
		DataAccess:   s.DataAccess.Clone(),
	}
}

// FrontendPlan is the output of the design_to_frontend operation.
type FrontendPlan struct {
	Tasks        []Task `json:"frontend_tasks"`
	TechStack    string `json:"tech_stack"`
	Dependencies List   `json:"dependencies"`
}

// Counts implements [Counter].
func (p *FrontendPlan) Counts() RunCounts {
	return RunCounts{Tasks: len(p.Tasks)}
}

// BackendPlan is the output of the design_to_backend operation.
type BackendPlan struct {
	Tasks        []Task `json:"backend_tasks"`
	TechStack    string `json:"tech_stack"`
	Dependencies List   `json:"dependencies"`
}

// Counts implements [Counter].
func (p *BackendPlan) Counts() RunCounts {
	return RunCounts{Tasks: len(p.Tasks)}
}

// CountByKind tallies tasks per [TaskType].
func CountByKind(tasks []Task) map[TaskType]int {
	counts := make(map[TaskType]int)
	for _, t := range tasks {
		counts[t.Kind()]++
	}
	return counts
}
