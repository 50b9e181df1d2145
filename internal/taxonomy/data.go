package taxonomy

import "github.com/carbonaegis/aegis-backend/internal/domain"

// Category IDs. These are the values persisted on emission records and used
// by the validation rule selector, so they must stay stable.
const (
	CategoryFuels             = "Fuels"
	CategoryBioenergy         = "Bioenergy"
	CategoryPassengerVehicles = "Passenger vehicles"
	CategoryDeliveryVehicles  = "Delivery vehicles"
	CategoryRefrigerant       = "Refrigerant & other"
	CategoryUKElectricity     = "UK electricity"
	CategoryHeatAndSteam      = "Heat and steam"
)

// Delivery-vehicle classes for which a size sub-type must be chosen.
const (
	VehicleVans           = "Vans"
	VehicleHGVRigid       = "Heavy Goods Vehicles (HGVs) – Rigid"
	VehicleHGVAllDiesel   = "HGV (all diesel)"
	VehicleRefrigRigid    = "Refrigerated HGVs – Rigid"
	VehicleRefrigArtic    = "Refrigerated HGVs – Articulated"
	VehicleHGVArticulated = "HGVs – Articulated"
)

var kmMiles = []Option{
	{Value: "km", Label: "km"},
	{Value: "miles", Label: "miles"},
}

var definitions = []*CategoryDefinition{
	{
		Scope:      domain.Scope1,
		CategoryID: CategoryFuels,
		FuelTypes: []Option{
			{Value: "Gaseous fuels", Label: "Gaseous fuels"},
			{Value: "Liquid fuels", Label: "Liquid fuels"},
			{Value: "Solid fuels", Label: "Solid fuels"},
		},
		FuelSubTypes: map[string][]Option{
			"Gaseous fuels": {
				{Value: "Butane", Label: "Butane"},
				{Value: "CNG", Label: "CNG"},
				{Value: "LNG", Label: "LNG"},
				{Value: "LPG", Label: "LPG"},
				{Value: "Natural gas", Label: "Natural gas"},
				{Value: "Propane", Label: "Propane"},
			},
			"Liquid fuels": {
				{Value: "Burning oil", Label: "Burning oil"},
				{Value: "Diesel (average biofuel blend)", Label: "Diesel (average biofuel blend)"},
				{Value: "Diesel (100% mineral diesel)", Label: "Diesel (100% mineral diesel)"},
				{Value: "Fuel oil", Label: "Fuel oil"},
				{Value: "Gas oil", Label: "Gas oil"},
				{Value: "Petrol (average biofuel blend)", Label: "Petrol (average biofuel blend)"},
				{Value: "Petrol (100% mineral petrol)", Label: "Petrol (100% mineral petrol)"},
			},
			"Solid fuels": {
				{Value: "Coal (industrial)", Label: "Coal (industrial)"},
				{Value: "Coal (electricity generation)", Label: "Coal (electricity generation)"},
				{Value: "Coking coal", Label: "Coking coal"},
				{Value: "Petroleum coke", Label: "Petroleum coke"},
			},
		},
		Units: map[string][]Option{
			"Gaseous fuels": {
				{Value: "kWh", Label: "kWh (net CV)"},
				{Value: "litres", Label: "litres"},
				{Value: "tonnes", Label: "tonnes"},
				{Value: "cubic metres", Label: "cubic metres"},
			},
			"Liquid fuels": {
				{Value: "kWh", Label: "kWh (net CV)"},
				{Value: "litres", Label: "litres"},
				{Value: "tonnes", Label: "tonnes"},
			},
			"Solid fuels": {
				{Value: "kWh", Label: "kWh (net CV)"},
				{Value: "tonnes", Label: "tonnes"},
			},
		},
	},
	{
		Scope:      domain.Scope1,
		CategoryID: CategoryBioenergy,
		FuelTypes: []Option{
			{Value: "Biofuel", Label: "Biofuel"},
			{Value: "Biomass", Label: "Biomass"},
			{Value: "Biogas", Label: "Biogas"},
		},
		FuelSubTypes: map[string][]Option{
			"Biofuel": {
				{Value: "Bioethanol", Label: "Bioethanol"},
				{Value: "Biodiesel ME", Label: "Biodiesel ME"},
				{Value: "Biodiesel HVO", Label: "Biodiesel HVO"},
			},
			"Biomass": {
				{Value: "Wood logs", Label: "Wood logs"},
				{Value: "Wood chips", Label: "Wood chips"},
				{Value: "Wood pellets", Label: "Wood pellets"},
				{Value: "Grass/straw", Label: "Grass/straw"},
			},
			"Biogas": {
				{Value: "Biogas", Label: "Biogas"},
				{Value: "Landfill gas", Label: "Landfill gas"},
			},
		},
		Units: map[string][]Option{
			"Biofuel": {
				{Value: "litres", Label: "litres"},
				{Value: "kg", Label: "kg"},
			},
			"Biomass": {
				{Value: "tonnes", Label: "tonnes"},
				{Value: "kWh", Label: "kWh"},
			},
			"Biogas": {
				{Value: "tonnes", Label: "tonnes"},
				{Value: "kWh", Label: "kWh"},
			},
		},
	},
	{
		Scope:      domain.Scope1,
		CategoryID: CategoryPassengerVehicles,
		FuelTypes: []Option{
			{Value: "Cars (by size)", Label: "Cars (by size)"},
			{Value: "Motorbikes", Label: "Motorbikes"},
		},
		FuelSubTypes: map[string][]Option{
			"Cars (by size)": {
				{Value: "Small car", Label: "Small car"},
				{Value: "Medium car", Label: "Medium car"},
				{Value: "Large car", Label: "Large car"},
				{Value: "Average car", Label: "Average car"},
			},
			"Motorbikes": {
				{Value: "Small", Label: "Small"},
				{Value: "Medium", Label: "Medium"},
				{Value: "Large", Label: "Large"},
				{Value: "Average", Label: "Average"},
			},
		},
		Units: map[string][]Option{
			"Cars (by size)": kmMiles,
			"Motorbikes":     kmMiles,
		},
	},
	{
		Scope:      domain.Scope1,
		CategoryID: CategoryDeliveryVehicles,
		FuelTypes: []Option{
			{Value: VehicleVans, Label: VehicleVans},
			{Value: VehicleHGVRigid, Label: VehicleHGVRigid},
			{Value: VehicleHGVArticulated, Label: VehicleHGVArticulated},
			{Value: VehicleHGVAllDiesel, Label: VehicleHGVAllDiesel},
			{Value: VehicleRefrigRigid, Label: VehicleRefrigRigid},
			{Value: VehicleRefrigArtic, Label: VehicleRefrigArtic},
		},
		FuelSubTypes: map[string][]Option{
			VehicleVans: {
				{Value: "Class I (up to 1.305 tonnes)", Label: "Class I (up to 1.305 tonnes)"},
				{Value: "Class II (1.305 to 1.74 tonnes)", Label: "Class II (1.305 to 1.74 tonnes)"},
				{Value: "Class III (1.74 to 3.5 tonnes)", Label: "Class III (1.74 to 3.5 tonnes)"},
				{Value: "Average (up to 3.5 tonnes)", Label: "Average (up to 3.5 tonnes)"},
			},
			VehicleHGVRigid: {
				{Value: ">3.5 - 7.5 tonnes", Label: ">3.5 - 7.5 tonnes"},
				{Value: ">7.5 tonnes-17 tonnes", Label: ">7.5 tonnes-17 tonnes"},
				{Value: ">17 tonnes", Label: ">17 tonnes"},
				{Value: "All rigids", Label: "All rigids"},
			},
			VehicleHGVArticulated: {},
			VehicleHGVAllDiesel: {
				{Value: "All HGVs", Label: "All HGVs"},
			},
			VehicleRefrigRigid: {
				{Value: ">3.5 - 7.5 tonnes", Label: ">3.5 - 7.5 tonnes"},
				{Value: ">7.5 tonnes-17 tonnes", Label: ">7.5 tonnes-17 tonnes"},
				{Value: ">17 tonnes", Label: ">17 tonnes"},
				{Value: "All rigids", Label: "All rigids"},
			},
			VehicleRefrigArtic: {
				{Value: ">3.5t-33t", Label: ">3.5t-33t"},
				{Value: ">33t", Label: ">33t"},
				{Value: "All artics", Label: "All artics"},
			},
		},
		Units: map[string][]Option{
			VehicleVans:           kmMiles,
			VehicleHGVRigid:       kmMiles,
			VehicleHGVArticulated: kmMiles,
			VehicleHGVAllDiesel:   kmMiles,
			VehicleRefrigRigid:    kmMiles,
			VehicleRefrigArtic:    kmMiles,
		},
	},
	{
		Scope:      domain.Scope1,
		CategoryID: CategoryRefrigerant,
		FuelTypes:  nil, // refrigerant is selected directly as a sub-type
		FuelSubTypes: map[string][]Option{
			"": {
				{Value: "Carbon dioxide", Label: "Carbon dioxide"},
				{Value: "Methane", Label: "Methane"},
				{Value: "Nitrous oxide", Label: "Nitrous oxide"},
				{Value: "HFC-125", Label: "HFC-125"},
				{Value: "HFC-134a", Label: "HFC-134a"},
				{Value: "R404A", Label: "R404A"},
				{Value: "R407C", Label: "R407C"},
				{Value: "R410A", Label: "R410A"},
				{Value: "R32", Label: "R32"},
			},
		},
		Units: map[string][]Option{
			"": {{Value: "kg", Label: "kg"}},
		},
	},
	{
		Scope:      domain.Scope2,
		CategoryID: CategoryUKElectricity,
		FuelTypes:  nil,
		FuelSubTypes: map[string][]Option{
			"": {},
		},
		Units: map[string][]Option{
			"": {
				{Value: "kWh", Label: "kWh"},
				{Value: "MWh", Label: "MWh"},
			},
		},
	},
	{
		Scope:      domain.Scope2,
		CategoryID: CategoryHeatAndSteam,
		FuelTypes:  nil,
		FuelSubTypes: map[string][]Option{
			"": {},
		},
		Units: map[string][]Option{
			"": {
				{Value: "kWh", Label: "kWh"},
				{Value: "MWh", Label: "MWh"},
			},
		},
	},
}

// EnergyTypes are the options for the "Heat and steam" energy type field.
var EnergyTypes = []Option{
	{Value: "Onsite heat and steam", Label: "Onsite heat and steam"},
	{Value: "District heat and steam", Label: "District heat and steam"},
}

// DeliverySubTypeRequired lists the delivery-vehicle classes for which the
// size sub-type is a required selection. The rule is deliberate: only these
// classes have size-differentiated factors in the reference table.
var DeliverySubTypeRequired = []string{
	VehicleVans,
	VehicleHGVRigid,
	VehicleHGVAllDiesel,
	VehicleRefrigRigid,
	VehicleRefrigArtic,
}
