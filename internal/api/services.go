package api

// Service accessors group Client methods by resource.
// Each service embeds *Client so the dispatch shortcuts stay reachable.

type AccountService struct{ *Client }

type ActivityService struct{ *Client }

type CategoriesService struct{ *Client }

type PeopleService struct{ *Client }

type ProjectsService struct{ *Client }

type TaskListsService struct{ *Client }

type TasksService struct{ *Client }

type TimeEntriesService struct{ *Client }

func (c *Client) Account() AccountService {
	return AccountService{c}
}

func (c *Client) Activity() ActivityService {
	return ActivityService{c}
}

func (c *Client) Categories() CategoriesService {
	return CategoriesService{c}
}

func (c *Client) People() PeopleService {
	return PeopleService{c}
}

func (c *Client) Projects() ProjectsService {
	return ProjectsService{c}
}

func (c *Client) TaskLists() TaskListsService {
	return TaskListsService{c}
}

func (c *Client) Tasks() TasksService {
	return TasksService{c}
}

func (c *Client) TimeEntries() TimeEntriesService {
	return TimeEntriesService{c}
}
