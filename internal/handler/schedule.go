package handler

import "github.com/davronbekm/silkroad-booking/internal/repository"

// RouteGroup is one train type together with its departures, in the order
// the repository returned them.
type RouteGroup struct {
    TrainType string
    Routes    []repository.TrainRoute
}

// GroupRoutesByTrainType partitions routes into per-train-type groups.
// Groups appear in first-seen order and every route keeps its position
// inside its group, so a repository list sorted by (train_type, from_city,
// departure_time) stays sorted after grouping. No route is dropped or
// duplicated.
func GroupRoutesByTrainType(routes []repository.TrainRoute) []RouteGroup {
    groups := make([]RouteGroup, 0)
    index := make(map[string]int)
    for _, r := range routes {
        i, ok := index[r.TrainType]
        if !ok {
            i = len(groups)
            index[r.TrainType] = i
            groups = append(groups, RouteGroup{TrainType: r.TrainType})
        }
        groups[i].Routes = append(groups[i].Routes, r)
    }
    return groups
}
